package postgres

import (
	"context"
	"errors"
	"fmt"

	"fundraiser-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a wallet inside the enrollment transaction.
func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, affiliate_id, balance, updated_at)
		VALUES ($1, $2, $3, $4)`

	_, err := tx.Exec(ctx, query, w.ID, w.AffiliateID, w.Balance, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByAffiliateID fetches a wallet without locking.
func (r *WalletRepo) GetByAffiliateID(ctx context.Context, affiliateID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, affiliate_id, balance, updated_at
		FROM wallets WHERE affiliate_id = $1`

	return scanWallet(r.pool.QueryRow(ctx, query, affiliateID))
}

// GetByAffiliateIDForUpdate fetches a wallet with pessimistic locking.
// This MUST be called within a transaction; it serializes balance
// mutation per wallet.
func (r *WalletRepo) GetByAffiliateIDForUpdate(ctx context.Context, tx pgx.Tx, affiliateID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, affiliate_id, balance, updated_at
		FROM wallets WHERE affiliate_id = $1 FOR UPDATE`

	return scanWallet(tx.QueryRow(ctx, query, affiliateID))
}

// UpdateBalance writes a wallet's balance within a transaction.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, balance, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(&w.ID, &w.AffiliateID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}
