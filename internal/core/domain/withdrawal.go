package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalStatus is the lifecycle state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved   WithdrawalStatus = "APPROVED"
	WithdrawalStatusRejected   WithdrawalStatus = "REJECTED"
	WithdrawalStatusProcessing WithdrawalStatus = "PROCESSING"
)

// WithdrawalRequest asks to drain wallet balance. The balance is debited
// only when an operator approves; approving or rejecting sets ProcessedAt
// exactly once. No transition back to PENDING exists.
type WithdrawalRequest struct {
	ID          uuid.UUID        `json:"id"`
	AffiliateID uuid.UUID        `json:"affiliate_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Status      WithdrawalStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	ProcessedAt *time.Time       `json:"processed_at,omitempty"`
}

// IsProcessed reports whether the request reached a terminal state.
func (w *WithdrawalRequest) IsProcessed() bool {
	return w.Status == WithdrawalStatusApproved || w.Status == WithdrawalStatusRejected
}

// CanProcess reports whether the request may still be approved or rejected.
func (w *WithdrawalRequest) CanProcess() bool {
	return w.Status == WithdrawalStatusPending || w.Status == WithdrawalStatusProcessing
}
