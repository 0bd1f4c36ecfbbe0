package postgres

import (
	"context"
	"errors"
	"fmt"

	"fundraiser-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BankRepo implements ports.BankRepository over the synced directory.
type BankRepo struct {
	pool Pool
}

// NewBankRepo creates a new BankRepo.
func NewBankRepo(pool Pool) *BankRepo {
	return &BankRepo{pool: pool}
}

// Upsert inserts or updates a bank keyed by its routing code.
// Re-running with identical upstream data produces no net change.
func (r *BankRepo) Upsert(ctx context.Context, b *domain.Bank) error {
	query := `INSERT INTO banks (id, name, slug, code, longcode, country, currency, logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			longcode = EXCLUDED.longcode,
			country = EXCLUDED.country,
			currency = EXCLUDED.currency,
			logo = EXCLUDED.logo,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Name, b.Slug, b.Code, b.LongCode,
		b.Country, b.Currency, b.Logo, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert bank: %w", err)
	}
	return nil
}

// GetByID fetches a bank by primary key.
func (r *BankRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error) {
	query := `SELECT id, name, slug, code, longcode, country, currency, logo, created_at, updated_at
		FROM banks WHERE id = $1`

	return scanBank(r.pool.QueryRow(ctx, query, id))
}

// GetByCode fetches a bank by routing code.
func (r *BankRepo) GetByCode(ctx context.Context, code string) (*domain.Bank, error) {
	query := `SELECT id, name, slug, code, longcode, country, currency, logo, created_at, updated_at
		FROM banks WHERE code = $1`

	return scanBank(r.pool.QueryRow(ctx, query, code))
}

// GetByName resolves a bank by display name, case-insensitively.
func (r *BankRepo) GetByName(ctx context.Context, name string) (*domain.Bank, error) {
	query := `SELECT id, name, slug, code, longcode, country, currency, logo, created_at, updated_at
		FROM banks WHERE LOWER(name) = LOWER($1)`

	return scanBank(r.pool.QueryRow(ctx, query, name))
}

// List returns the full directory ordered by name.
func (r *BankRepo) List(ctx context.Context) ([]domain.Bank, error) {
	query := `SELECT id, name, slug, code, longcode, country, currency, logo, created_at, updated_at
		FROM banks ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	defer rows.Close()

	var banks []domain.Bank
	for rows.Next() {
		b := domain.Bank{}
		err := rows.Scan(
			&b.ID, &b.Name, &b.Slug, &b.Code, &b.LongCode,
			&b.Country, &b.Currency, &b.Logo, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan bank row: %w", err)
		}
		banks = append(banks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank rows: %w", err)
	}
	return banks, nil
}

func scanBank(row pgx.Row) (*domain.Bank, error) {
	b := &domain.Bank{}
	err := row.Scan(
		&b.ID, &b.Name, &b.Slug, &b.Code, &b.LongCode,
		&b.Country, &b.Currency, &b.Logo, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan bank: %w", err)
	}
	return b, nil
}
