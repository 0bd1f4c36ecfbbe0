package postgres

import (
	"context"
	"errors"
	"fmt"

	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BankAccountRepo implements ports.BankAccountRepository.
type BankAccountRepo struct {
	pool Pool
}

// NewBankAccountRepo creates a new BankAccountRepo.
func NewBankAccountRepo(pool Pool) *BankAccountRepo {
	return &BankAccountRepo{pool: pool}
}

// Create inserts a verified linked account. A concurrent duplicate of the
// (user, bank, account number) triple surfaces as ports.ErrUniqueViolation.
func (r *BankAccountRepo) Create(ctx context.Context, a *domain.LinkedBankAccount) error {
	query := `INSERT INTO linked_bank_accounts (id, user_id, bank_id, account_number, account_name, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.UserID, a.BankID, a.AccountNumber, a.AccountName,
		a.IsVerified, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert linked account: %w", ports.ErrUniqueViolation)
		}
		return fmt.Errorf("insert linked account: %w", err)
	}
	return nil
}

// Exists reports whether the (user, bank, account number) triple is taken.
func (r *BankAccountRepo) Exists(ctx context.Context, userID, bankID uuid.UUID, accountNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM linked_bank_accounts WHERE user_id = $1 AND bank_id = $2 AND account_number = $3)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, bankID, accountNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("check linked account exists: %w", err)
	}
	return exists, nil
}

// CountForBank counts a user's linked accounts under one bank.
func (r *BankAccountRepo) CountForBank(ctx context.Context, userID, bankID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM linked_bank_accounts WHERE user_id = $1 AND bank_id = $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID, bankID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count linked accounts: %w", err)
	}
	return count, nil
}

// FirstForUser returns the user's oldest linked account, or nil.
func (r *BankAccountRepo) FirstForUser(ctx context.Context, userID uuid.UUID) (*domain.LinkedBankAccount, error) {
	query := `SELECT id, user_id, bank_id, account_number, account_name, is_verified, created_at, updated_at
		FROM linked_bank_accounts WHERE user_id = $1 ORDER BY created_at LIMIT 1`

	return scanLinkedAccount(r.pool.QueryRow(ctx, query, userID))
}

// ListForUser returns all of a user's linked accounts, oldest first.
func (r *BankAccountRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.LinkedBankAccount, error) {
	query := `SELECT id, user_id, bank_id, account_number, account_name, is_verified, created_at, updated_at
		FROM linked_bank_accounts WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list linked accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.LinkedBankAccount
	for rows.Next() {
		a := domain.LinkedBankAccount{}
		err := rows.Scan(
			&a.ID, &a.UserID, &a.BankID, &a.AccountNumber, &a.AccountName,
			&a.IsVerified, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan linked account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate linked account rows: %w", err)
	}
	return accounts, nil
}

func scanLinkedAccount(row pgx.Row) (*domain.LinkedBankAccount, error) {
	a := &domain.LinkedBankAccount{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.BankID, &a.AccountNumber, &a.AccountName,
		&a.IsVerified, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan linked account: %w", err)
	}
	return a, nil
}
