package postgres

import (
	"context"
	"fmt"

	"fundraiser-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository. Entries are append-only;
// no update or delete paths exist.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// CreateTransaction appends a ledger entry within a database transaction.
func (r *LedgerRepo) CreateTransaction(ctx context.Context, tx pgx.Tx, t *domain.LedgerTransaction) error {
	query := `INSERT INTO ledger_transactions (id, wallet_id, amount, kind, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query, t.ID, t.WalletID, t.Amount, t.Kind, t.Description, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ledger transaction: %w", err)
	}
	return nil
}

// CreateEarning appends an earning record within a database transaction.
func (r *LedgerRepo) CreateEarning(ctx context.Context, tx pgx.Tx, e *domain.EarningRecord) error {
	query := `INSERT INTO earning_records (id, affiliate_id, donation_id, amount_earned, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, e.ID, e.AffiliateID, e.DonationID, e.AmountEarned, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert earning record: %w", err)
	}
	return nil
}

// ListByWallet returns a wallet's ledger entries, newest first.
func (r *LedgerRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.LedgerTransaction, error) {
	query := `SELECT id, wallet_id, amount, kind, description, created_at
		FROM ledger_transactions WHERE wallet_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list ledger transactions: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerTransaction
	for rows.Next() {
		t := domain.LedgerTransaction{}
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Amount, &t.Kind, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return entries, nil
}
