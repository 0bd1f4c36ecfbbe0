package postgres

import (
	"context"
	"fmt"

	"fundraiser-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DonationRepo implements ports.DonationRepository.
type DonationRepo struct {
	pool Pool
}

// NewDonationRepo creates a new DonationRepo.
func NewDonationRepo(pool Pool) *DonationRepo {
	return &DonationRepo{pool: pool}
}

// Create inserts a donation within a database transaction, so commission
// accrual commits or rolls back with it.
func (r *DonationRepo) Create(ctx context.Context, tx pgx.Tx, d *domain.Donation) error {
	query := `INSERT INTO donations (id, campaign_id, donor_id, amount, comment, is_anonymous, referral_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		d.ID, d.CampaignID, d.DonorID, d.Amount, d.Comment,
		d.IsAnonymous, d.ReferralCode, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

// ListByCampaign returns a campaign's donations, newest first.
func (r *DonationRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Donation, error) {
	query := `SELECT id, campaign_id, donor_id, amount, comment, is_anonymous, referral_code, created_at
		FROM donations WHERE campaign_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		d := domain.Donation{}
		err := rows.Scan(
			&d.ID, &d.CampaignID, &d.DonorID, &d.Amount, &d.Comment,
			&d.IsAnonymous, &d.ReferralCode, &d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan donation row: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donation rows: %w", err)
	}
	return donations, nil
}
