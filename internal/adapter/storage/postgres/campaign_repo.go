package postgres

import (
	"context"
	"errors"
	"fmt"

	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CampaignRepo implements ports.CampaignRepository.
type CampaignRepo struct {
	pool Pool
}

// NewCampaignRepo creates a new CampaignRepo.
func NewCampaignRepo(pool Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

// Create inserts a new campaign.
func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	query := `INSERT INTO campaigns (id, owner_id, title, slug, description, goal, end_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.OwnerID, c.Title, c.Slug, c.Description,
		c.Goal, c.EndDate, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert campaign: %w", ports.ErrUniqueViolation)
		}
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// GetByID fetches a campaign by UUID.
func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	query := `SELECT id, owner_id, title, slug, description, goal, end_date, is_active, created_at, updated_at
		FROM campaigns WHERE id = $1`

	return scanCampaign(r.pool.QueryRow(ctx, query, id))
}

// GetBySlug fetches a campaign by slug.
func (r *CampaignRepo) GetBySlug(ctx context.Context, slug string) (*domain.Campaign, error) {
	query := `SELECT id, owner_id, title, slug, description, goal, end_date, is_active, created_at, updated_at
		FROM campaigns WHERE slug = $1`

	return scanCampaign(r.pool.QueryRow(ctx, query, slug))
}

// List returns all campaigns, newest first.
func (r *CampaignRepo) List(ctx context.Context) ([]domain.Campaign, error) {
	query := `SELECT id, owner_id, title, slug, description, goal, end_date, is_active, created_at, updated_at
		FROM campaigns ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		c := domain.Campaign{}
		err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Title, &c.Slug, &c.Description,
			&c.Goal, &c.EndDate, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan campaign row: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaign rows: %w", err)
	}
	return campaigns, nil
}

// TotalRaised sums a campaign's donations.
func (r *CampaignRepo) TotalRaised(ctx context.Context, campaignID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM donations WHERE campaign_id = $1`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, campaignID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum campaign donations: %w", err)
	}
	return total, nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Title, &c.Slug, &c.Description,
		&c.Goal, &c.EndDate, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan campaign: %w", err)
	}
	return c, nil
}
