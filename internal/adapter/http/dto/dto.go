package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// VerifyEmailRequest is the request body for email verification.
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ResendOTPRequest is the request body for a fresh verification code.
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetRequestBody is the request body for starting a password reset.
type PasswordResetRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetBody is the request body for completing a password reset.
type PasswordResetBody struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ProfileResponse is the authenticated user's account view.
type ProfileResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// BankResponse is one bank directory entry.
type BankResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Code     string  `json:"code"`
	Country  string  `json:"country"`
	Currency string  `json:"currency"`
	Logo     *string `json:"logo,omitempty"`
}

// SyncResponse reports the outcome of a bank directory sync.
type SyncResponse struct {
	Synced int `json:"synced"`
}

// LinkAccountRequest is the request body for bank account linking.
type LinkAccountRequest struct {
	BankName      string `json:"bank_name" binding:"required,min=1,max=200"`
	AccountNumber string `json:"account_number" binding:"required,acct_number"`
}

// LinkedAccountResponse is one linked bank account.
type LinkedAccountResponse struct {
	ID            string    `json:"id"`
	BankID        string    `json:"bank_id"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// EnrollResponse is the compound result of affiliate enrollment.
type EnrollResponse struct {
	AffiliateID    string          `json:"affiliate_id"`
	ReferralCode   string          `json:"referral_code"`
	SubaccountCode string          `json:"subaccount_code"`
	WalletID       string          `json:"wallet_id"`
	Balance        decimal.Decimal `json:"balance"`
}

// WalletResponse is the wallet balance view.
type WalletResponse struct {
	ID        string          `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TransactionResponse is one ledger entry.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// WithdrawalRequestBody is the request body for a withdrawal.
type WithdrawalRequestBody struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// WithdrawalResponse is one withdrawal request.
type WithdrawalResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}

// CreateCampaignRequest is the request body for campaign creation.
type CreateCampaignRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	Goal        decimal.Decimal `json:"goal" binding:"required"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
}

// CampaignResponse is one campaign.
type CampaignResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Goal        decimal.Decimal `json:"goal"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CampaignDetailResponse is a campaign with funding progress.
type CampaignDetailResponse struct {
	CampaignResponse
	TotalRaised decimal.Decimal `json:"total_raised"`
	Progress    decimal.Decimal `json:"progress"` // Percent of goal
}

// DonateRequest is the request body for a donation.
type DonateRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Comment      *string         `json:"comment,omitempty" binding:"omitempty,max=1000"`
	IsAnonymous  bool            `json:"is_anonymous"`
	ReferralCode *string         `json:"referral_code,omitempty" binding:"omitempty,referral_code"`
}

// DonationResponse is one recorded donation.
type DonationResponse struct {
	ID           string          `json:"id"`
	CampaignID   string          `json:"campaign_id"`
	Amount       decimal.Decimal `json:"amount"`
	IsAnonymous  bool            `json:"is_anonymous"`
	ReferralCode *string         `json:"referral_code,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
