package ports

import (
	"context"
	"time"

	"fundraiser-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// BankRepository defines persistence for the synced bank directory.
type BankRepository interface {
	// Upsert inserts or updates a bank keyed by its routing code.
	Upsert(ctx context.Context, bank *domain.Bank) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error)
	GetByCode(ctx context.Context, code string) (*domain.Bank, error)
	// GetByName resolves a bank by display name, case-insensitively.
	GetByName(ctx context.Context, name string) (*domain.Bank, error)
	List(ctx context.Context) ([]domain.Bank, error)
}

// BankAccountRepository defines persistence for linked bank accounts.
type BankAccountRepository interface {
	Create(ctx context.Context, account *domain.LinkedBankAccount) error
	// Exists reports whether the (user, bank, account number) triple is taken.
	Exists(ctx context.Context, userID, bankID uuid.UUID, accountNumber string) (bool, error)
	// CountForBank counts a user's linked accounts under one bank.
	CountForBank(ctx context.Context, userID, bankID uuid.UUID) (int, error)
	// FirstForUser returns the user's oldest linked account, or nil.
	FirstForUser(ctx context.Context, userID uuid.UUID) (*domain.LinkedBankAccount, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.LinkedBankAccount, error)
}

// AffiliateRepository defines persistence for affiliates.
// Create runs inside the enrollment transaction.
type AffiliateRepository interface {
	Create(ctx context.Context, tx pgx.Tx, affiliate *domain.Affiliate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Affiliate, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Affiliate, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.Affiliate, error)
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks; balance
// mutation always goes through a FOR UPDATE read to serialize per wallet.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByAffiliateID(ctx context.Context, affiliateID uuid.UUID) (*domain.Wallet, error)
	GetByAffiliateIDForUpdate(ctx context.Context, tx pgx.Tx, affiliateID uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
}

// LedgerRepository defines persistence for the append-only ledger.
type LedgerRepository interface {
	CreateTransaction(ctx context.Context, tx pgx.Tx, entry *domain.LedgerTransaction) error
	CreateEarning(ctx context.Context, tx pgx.Tx, earning *domain.EarningRecord) error
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.LedgerTransaction, error)
}

// WithdrawalRepository defines persistence for withdrawal requests.
type WithdrawalRepository interface {
	Create(ctx context.Context, request *domain.WithdrawalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WithdrawalRequest, error)
	ListByAffiliate(ctx context.Context, affiliateID uuid.UUID) ([]domain.WithdrawalRequest, error)
	ListPending(ctx context.Context) ([]domain.WithdrawalRequest, error)
	// MarkProcessed transitions status and stamps processed_at in one write.
	MarkProcessed(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.WithdrawalStatus, processedAt time.Time) error
}

// CampaignRepository defines persistence for campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Campaign, error)
	List(ctx context.Context) ([]domain.Campaign, error)
	TotalRaised(ctx context.Context, campaignID uuid.UUID) (decimal.Decimal, error)
}

// DonationRepository defines persistence for donations.
// Create runs inside the donation transaction so commission accrual
// commits or rolls back with it.
type DonationRepository interface {
	Create(ctx context.Context, tx pgx.Tx, donation *domain.Donation) error
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Donation, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
