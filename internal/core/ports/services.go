package ports

import (
	"context"
	"time"

	"fundraiser-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TokenService handles JWT token operations for the authenticated-user
// handle carried through requests.
type TokenService interface {
	Generate(userID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// OTPStore keeps short-lived email verification codes.
type OTPStore interface {
	Store(ctx context.Context, email, code string, ttl time.Duration) error
	// Consume validates and deletes the code. Returns false when the code
	// is absent, expired, or does not match.
	Consume(ctx context.Context, email, code string) (bool, error)
}

// Mailer delivers transactional email.
type Mailer interface {
	SendOTP(to, code string) error
	SendPasswordReset(to, code string) error
}

// SessionStore tracks revoked tokens so logout takes effect before the
// token's natural expiry.
type SessionStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// WebhookEventStore remembers processed provider event references so a
// redelivered event is acknowledged without being recorded twice.
type WebhookEventStore interface {
	// MarkProcessed records the reference. Returns false when it was
	// already recorded by an earlier delivery.
	MarkProcessed(ctx context.Context, reference string, ttl time.Duration) (bool, error)
	// Forget drops the record so a transiently failed delivery can be
	// retried by the provider.
	Forget(ctx context.Context, reference string) error
}

// BankCache is a read-through cache of the bank directory.
type BankCache interface {
	Get(ctx context.Context) ([]domain.Bank, error) // nil, nil on miss
	Set(ctx context.Context, banks []domain.Bank, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// --- Service Ports (Business Logic) ---

// AuthService defines the account lifecycle: registration, OTP
// verification, login, logout, password reset, and profile lookup.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	VerifyEmail(ctx context.Context, email, code string) error
	// ResendOTP issues a fresh verification code for an unverified
	// account, replacing any earlier one.
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (string, time.Time, error) // token, expiry, error
	// Logout revokes the presented token for its remaining lifetime.
	Logout(ctx context.Context, token string) error
	// RequestPasswordReset emails a reset code. It succeeds whether or
	// not the address is registered, so accounts cannot be enumerated.
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// RegisterRequest holds validated input for user registration.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// BankSyncService ingests the provider's bank directory.
type BankSyncService interface {
	// Sync upserts the full directory; returns the number of banks seen.
	// Any transport or parse failure aborts the run without partial
	// success being reported.
	Sync(ctx context.Context) (int, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)
}

// LinkingService validates and attaches verified bank accounts to users.
type LinkingService interface {
	LinkAccount(ctx context.Context, req LinkAccountRequest) (*domain.LinkedBankAccount, error)
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]domain.LinkedBankAccount, error)
}

// LinkAccountRequest holds validated input for bank account linking.
type LinkAccountRequest struct {
	UserID        uuid.UUID
	BankName      string // Free text, resolved case-insensitively
	AccountNumber string // Exactly 10 ASCII digits
}

// EnrollmentService promotes a user to affiliate status.
type EnrollmentService interface {
	Enroll(ctx context.Context, userID uuid.UUID) (*EnrollmentResult, error)
}

// EnrollmentResult is the compound outcome of enrollment: the affiliate
// and its zero-balance wallet, created in one transaction.
type EnrollmentResult struct {
	Affiliate *domain.Affiliate
	Wallet    *domain.Wallet
}

// LedgerService owns wallet balance accrual and the withdrawal lifecycle.
type LedgerService interface {
	// RecordEarning appends an earning record plus an EARNING ledger entry
	// and increments the wallet balance, serialized per wallet.
	RecordEarning(ctx context.Context, affiliateID, donationID uuid.UUID, amount decimal.Decimal) error
	// RequestWithdrawal creates a PENDING request without touching balance.
	RequestWithdrawal(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.WithdrawalRequest, error)
	// Approve debits the wallet, appends a WITHDRAWAL ledger entry, and
	// stamps processed_at once. Re-approval is a no-op.
	Approve(ctx context.Context, requestID uuid.UUID) (*domain.WithdrawalRequest, error)
	// Reject stamps processed_at once with no balance effect.
	Reject(ctx context.Context, requestID uuid.UUID) (*domain.WithdrawalRequest, error)
	GetWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]domain.LedgerTransaction, error)
	ListWithdrawals(ctx context.Context, userID uuid.UUID) ([]domain.WithdrawalRequest, error)
	ListPendingWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error)
}

// CampaignService defines campaign CRUD.
type CampaignService interface {
	Create(ctx context.Context, req CreateCampaignRequest) (*domain.Campaign, error)
	Get(ctx context.Context, slug string) (*CampaignDetail, error)
	List(ctx context.Context) ([]domain.Campaign, error)
}

// CreateCampaignRequest holds validated input for campaign creation.
type CreateCampaignRequest struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Goal        decimal.Decimal
	EndDate     *time.Time
}

// CampaignDetail is a campaign with derived funding progress.
type CampaignDetail struct {
	Campaign    domain.Campaign
	TotalRaised decimal.Decimal
	Progress    decimal.Decimal // Percent of goal
}

// DonationService records donations and triggers commission accrual.
type DonationService interface {
	Donate(ctx context.Context, req DonateRequest) (*domain.Donation, error)
}

// DonateRequest holds validated input for a donation.
type DonateRequest struct {
	CampaignID   uuid.UUID
	DonorID      *uuid.UUID
	Amount       decimal.Decimal
	Comment      *string
	IsAnonymous  bool
	ReferralCode *string
}

// HealthChecker reports liveness of one backing dependency.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}
