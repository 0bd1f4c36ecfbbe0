package email

import (
	"fmt"

	"fundraiser-backend/config"

	"gopkg.in/gomail.v2"
)

// Mailer implements ports.Mailer over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates an SMTP mailer from configuration.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{
		dialer: dialer,
		from:   cfg.From,
	}
}

// SendOTP delivers an email verification code.
func (m *Mailer) SendOTP(to, code string) error {
	if err := m.dialer.DialAndSend(m.composeOTP(to, code)); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

// SendPasswordReset delivers a password reset code.
func (m *Mailer) SendPasswordReset(to, code string) error {
	if err := m.dialer.DialAndSend(m.composePasswordReset(to, code)); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	return nil
}

func (m *Mailer) composeOTP(to, code string) *gomail.Message {
	body := fmt.Sprintf(`
		<h2>Email verification</h2>
		<p>Your verification code is <strong>%s</strong>.</p>
		<p>The code expires in 10 minutes.</p>
	`, code)
	return m.compose(to, "Verify your email address", body)
}

func (m *Mailer) composePasswordReset(to, code string) *gomail.Message {
	body := fmt.Sprintf(`
		<h2>Password reset</h2>
		<p>Your password reset code is <strong>%s</strong>.</p>
		<p>The code expires in 15 minutes. If you did not request a reset, ignore this email.</p>
	`, code)
	return m.compose(to, "Reset your password", body)
}

func (m *Mailer) compose(to, subject, htmlBody string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return msg
}
