package domain

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Affiliate is a user enrolled to earn referral commission on donations.
// One per user; requires a linked bank account; holds the external payout
// subaccount reference.
type Affiliate struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	ReferralCode   string    `json:"referral_code"`
	SubaccountCode string    `json:"subaccount_code"`
	CreatedAt      time.Time `json:"created_at"`
}

// Wallet is the running balance container for one affiliate.
// Balance is non-negative by policy, enforced at withdrawal time.
type Wallet struct {
	ID          uuid.UUID       `json:"id"`
	AffiliateID uuid.UUID       `json:"affiliate_id"`
	Balance     decimal.Decimal `json:"balance"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionKind is the kind of a ledger entry.
type TransactionKind string

const (
	TransactionKindEarning    TransactionKind = "EARNING"
	TransactionKindWithdrawal TransactionKind = "WITHDRAWAL"
)

// LedgerTransaction is an append-only, immutable balance-affecting record,
// ordered by timestamp.
type LedgerTransaction struct {
	ID          uuid.UUID       `json:"id"`
	WalletID    uuid.UUID       `json:"wallet_id"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EarningRecord links a donation to an affiliate and the commission
// derived from it.
type EarningRecord struct {
	ID           uuid.UUID       `json:"id"`
	AffiliateID  uuid.UUID       `json:"affiliate_id"`
	DonationID   uuid.UUID       `json:"donation_id"`
	AmountEarned decimal.Decimal `json:"amount_earned"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewReferralCode returns 8 uppercase hex characters from a random UUID.
// Uniqueness is guaranteed only by the database constraint; callers retry
// on conflict.
func NewReferralCode() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:4]))
}
