package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bank is a directory entry synced from the payment provider.
// Keyed by routing code; upserted by the directory sync, never deleted
// by normal operation.
type Bank struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Code      string    `json:"code"` // Routing code, unique
	LongCode  *string   `json:"longcode,omitempty"`
	Country   string    `json:"country"`
	Currency  string    `json:"currency"`
	Logo      *string   `json:"logo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LinkedBankAccount attaches a verified bank account to a user.
// The (user, bank, account number) triple is unique; a user holds at most
// 3 accounts per bank. Verified exactly once, at creation.
type LinkedBankAccount struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	BankID        uuid.UUID `json:"bank_id"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name"` // Holder name resolved by the provider
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MaxAccountsPerBank caps linked accounts per (user, bank) pair.
const MaxAccountsPerBank = 3
