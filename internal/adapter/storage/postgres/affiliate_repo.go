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

// AffiliateRepo implements ports.AffiliateRepository.
type AffiliateRepo struct {
	pool Pool
}

// NewAffiliateRepo creates a new AffiliateRepo.
func NewAffiliateRepo(pool Pool) *AffiliateRepo {
	return &AffiliateRepo{pool: pool}
}

// Create inserts an affiliate inside the enrollment transaction.
// A referral-code collision surfaces as ports.ErrUniqueViolation so the
// caller can retry with a fresh code.
func (r *AffiliateRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Affiliate) error {
	query := `INSERT INTO affiliates (id, user_id, referral_code, subaccount_code, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, a.ID, a.UserID, a.ReferralCode, a.SubaccountCode, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert affiliate: %w", ports.ErrUniqueViolation)
		}
		return fmt.Errorf("insert affiliate: %w", err)
	}
	return nil
}

// GetByID fetches an affiliate by UUID.
func (r *AffiliateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Affiliate, error) {
	query := `SELECT id, user_id, referral_code, subaccount_code, created_at
		FROM affiliates WHERE id = $1`

	return scanAffiliate(r.pool.QueryRow(ctx, query, id))
}

// GetByUserID fetches the affiliate owned by a user.
func (r *AffiliateRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Affiliate, error) {
	query := `SELECT id, user_id, referral_code, subaccount_code, created_at
		FROM affiliates WHERE user_id = $1`

	return scanAffiliate(r.pool.QueryRow(ctx, query, userID))
}

// GetByReferralCode fetches an affiliate by referral code.
func (r *AffiliateRepo) GetByReferralCode(ctx context.Context, code string) (*domain.Affiliate, error) {
	query := `SELECT id, user_id, referral_code, subaccount_code, created_at
		FROM affiliates WHERE referral_code = $1`

	return scanAffiliate(r.pool.QueryRow(ctx, query, code))
}

func scanAffiliate(row pgx.Row) (*domain.Affiliate, error) {
	a := &domain.Affiliate{}
	err := row.Scan(&a.ID, &a.UserID, &a.ReferralCode, &a.SubaccountCode, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan affiliate: %w", err)
	}
	return a, nil
}
