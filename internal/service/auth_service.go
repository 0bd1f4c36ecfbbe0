package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	otpTTL   = 10 * time.Minute
	resetTTL = 15 * time.Minute
)

// AuthService implements the account lifecycle: registration, email
// verification, login, logout, password reset, and profile lookup.
type AuthService struct {
	userRepo   ports.UserRepository
	hasher     ports.HashService
	tokens     ports.TokenService
	otpStore   ports.OTPStore
	resetStore ports.OTPStore
	sessions   ports.SessionStore
	mailer     ports.Mailer
	log        zerolog.Logger
}

// NewAuthService creates the authentication service.
func NewAuthService(
	userRepo ports.UserRepository,
	hasher ports.HashService,
	tokens ports.TokenService,
	otpStore ports.OTPStore,
	resetStore ports.OTPStore,
	sessions ports.SessionStore,
	mailer ports.Mailer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		hasher:     hasher,
		tokens:     tokens,
		otpStore:   otpStore,
		resetStore: resetStore,
		sessions:   sessions,
		mailer:     mailer,
		log:        log,
	}
}

// Register creates an unverified user and sends a verification code.
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, ports.ErrUniqueViolation) {
			return nil, apperror.ErrEmailExists()
		}
		return nil, apperror.InternalError(err)
	}

	code, err := generateOTP()
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if err := s.otpStore.Store(ctx, user.Email, code, otpTTL); err != nil {
		return nil, apperror.InternalError(err)
	}

	// Delivery failure must not fail registration; ResendOTP issues a
	// fresh code on demand.
	if err := s.mailer.SendOTP(user.Email, code); err != nil {
		s.log.Error().Err(err).Str("email", user.Email).Msg("failed to send verification email")
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

// VerifyEmail consumes the OTP and marks the account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return apperror.InternalError(err)
	}
	if user == nil {
		return apperror.ErrNotFound("user")
	}
	if user.EmailVerified {
		return nil
	}

	ok, err := s.otpStore.Consume(ctx, email, code)
	if err != nil {
		return apperror.InternalError(err)
	}
	if !ok {
		return apperror.ErrInvalidOTP()
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return apperror.InternalError(err)
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("email verified")
	return nil
}

// ResendOTP replaces any pending verification code and emails the new
// one. Already verified accounts get a no-op success.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return apperror.InternalError(err)
	}
	if user == nil {
		return apperror.ErrNotFound("user")
	}
	if user.EmailVerified {
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return apperror.InternalError(err)
	}
	if err := s.otpStore.Store(ctx, user.Email, code, otpTTL); err != nil {
		return apperror.InternalError(err)
	}
	// Unlike registration, delivery is the whole point here.
	if err := s.mailer.SendOTP(user.Email, code); err != nil {
		return apperror.InternalError(err)
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("verification code resent")
	return nil
}

// Login authenticates and returns a signed token with its expiry.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}
	if user == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	match, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}
	if !match {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}
	if !user.EmailVerified {
		return "", time.Time{}, apperror.ErrEmailNotVerified()
	}

	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return token, expiresAt, nil
}

// Logout revokes the presented token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return apperror.ErrInvalidToken()
	}

	if err := s.sessions.Revoke(ctx, token, time.Until(claims.ExpiresAt)); err != nil {
		return apperror.InternalError(err)
	}

	s.log.Info().Str("user_id", claims.UserID.String()).Msg("user logged out")
	return nil
}

// RequestPasswordReset emails a reset code. The response is the same
// whether or not the address is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return apperror.InternalError(err)
	}
	if user == nil {
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return apperror.InternalError(err)
	}
	if err := s.resetStore.Store(ctx, user.Email, code, resetTTL); err != nil {
		return apperror.InternalError(err)
	}
	if err := s.mailer.SendPasswordReset(user.Email, code); err != nil {
		return apperror.InternalError(err)
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("password reset requested")
	return nil
}

// ResetPassword consumes the reset code and replaces the password hash.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return apperror.InternalError(err)
	}
	if user == nil {
		return apperror.ErrInvalidOTP()
	}

	ok, err := s.resetStore.Consume(ctx, email, code)
	if err != nil {
		return apperror.InternalError(err)
	}
	if !ok {
		return apperror.ErrInvalidOTP()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperror.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return apperror.InternalError(err)
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("password reset")
	return nil
}

// Profile returns the authenticated user's account record.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	return user, nil
}

// generateOTP returns a 6-digit numeric code from the CSPRNG.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
