package service

import (
	"context"
	"time"

	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CampaignService implements campaign creation and read paths.
type CampaignService struct {
	campaignRepo ports.CampaignRepository
	log          zerolog.Logger
}

// NewCampaignService creates the campaign service.
func NewCampaignService(campaignRepo ports.CampaignRepository, log zerolog.Logger) *CampaignService {
	return &CampaignService{campaignRepo: campaignRepo, log: log}
}

// Create persists a new active campaign with a derived slug.
func (s *CampaignService) Create(ctx context.Context, req ports.CreateCampaignRequest) (*domain.Campaign, error) {
	if !req.Goal.IsPositive() {
		return nil, apperror.Validation("goal must be greater than zero")
	}
	if req.EndDate != nil && req.EndDate.Before(time.Now()) {
		return nil, apperror.Validation("end date must be in the future")
	}

	now := time.Now()
	id := uuid.New()
	campaign := &domain.Campaign{
		ID:          id,
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Slug:        domain.Slugify(req.Title, id),
		Description: req.Description,
		Goal:        req.Goal,
		EndDate:     req.EndDate,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, apperror.InternalError(err)
	}

	s.log.Info().Str("campaign_id", id.String()).Str("slug", campaign.Slug).Msg("campaign created")
	return campaign, nil
}

// Get returns a campaign by slug with its funding progress.
func (s *CampaignService) Get(ctx context.Context, slug string) (*ports.CampaignDetail, error) {
	campaign, err := s.campaignRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if campaign == nil {
		return nil, apperror.ErrNotFound("campaign")
	}

	total, err := s.campaignRepo.TotalRaised(ctx, campaign.ID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	progress := decimal.Zero
	if campaign.Goal.IsPositive() {
		progress = total.Div(campaign.Goal).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &ports.CampaignDetail{
		Campaign:    *campaign,
		TotalRaised: total,
		Progress:    progress,
	}, nil
}

// List returns all campaigns, newest first.
func (s *CampaignService) List(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.campaignRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return campaigns, nil
}
