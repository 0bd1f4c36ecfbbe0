package service

import (
	"context"
	"time"

	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DonationService records donations and accrues affiliate commission.
// Donation, earning record, ledger entry, and wallet credit commit or
// roll back together in one transaction.
type DonationService struct {
	campaignRepo      ports.CampaignRepository
	donationRepo      ports.DonationRepository
	affiliateRepo     ports.AffiliateRepository
	walletRepo        ports.WalletRepository
	ledgerRepo        ports.LedgerRepository
	transactor        ports.DBTransactor
	commissionPercent decimal.Decimal
	log               zerolog.Logger
}

// NewDonationService creates the donation service.
func NewDonationService(
	campaignRepo ports.CampaignRepository,
	donationRepo ports.DonationRepository,
	affiliateRepo ports.AffiliateRepository,
	walletRepo ports.WalletRepository,
	ledgerRepo ports.LedgerRepository,
	transactor ports.DBTransactor,
	commissionPercent float64,
	log zerolog.Logger,
) *DonationService {
	return &DonationService{
		campaignRepo:      campaignRepo,
		donationRepo:      donationRepo,
		affiliateRepo:     affiliateRepo,
		walletRepo:        walletRepo,
		ledgerRepo:        ledgerRepo,
		transactor:        transactor,
		commissionPercent: decimal.NewFromFloat(commissionPercent),
		log:               log,
	}
}

// Donate records a donation against an active campaign. When a valid
// referral code is attached, the referring affiliate earns commission in
// the same transaction. An unknown referral code does not fail the
// donation; the attribution is dropped.
func (s *DonationService) Donate(ctx context.Context, req ports.DonateRequest) (*domain.Donation, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	campaign, err := s.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if campaign == nil {
		return nil, apperror.ErrNotFound("campaign")
	}
	if !campaign.IsActive || campaign.IsExpired(time.Now()) {
		return nil, apperror.Validation("campaign is not accepting donations")
	}

	var affiliate *domain.Affiliate
	if req.ReferralCode != nil && *req.ReferralCode != "" {
		affiliate, err = s.affiliateRepo.GetByReferralCode(ctx, *req.ReferralCode)
		if err != nil {
			return nil, apperror.InternalError(err)
		}
		if affiliate == nil {
			s.log.Warn().Str("referral_code", *req.ReferralCode).Msg("unknown referral code on donation")
		}
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx)

	now := time.Now()
	donation := &domain.Donation{
		ID:           uuid.New(),
		CampaignID:   req.CampaignID,
		DonorID:      req.DonorID,
		Amount:       req.Amount,
		Comment:      req.Comment,
		IsAnonymous:  req.IsAnonymous,
		ReferralCode: req.ReferralCode,
		CreatedAt:    now,
	}
	if err := s.donationRepo.Create(ctx, dbTx, donation); err != nil {
		return nil, apperror.InternalError(err)
	}

	if affiliate != nil {
		if err := s.accrueCommission(ctx, dbTx, affiliate.ID, donation, now); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(err)
	}

	s.log.Info().
		Str("donation_id", donation.ID.String()).
		Str("campaign_id", req.CampaignID.String()).
		Str("amount", req.Amount.String()).
		Bool("attributed", affiliate != nil).
		Msg("donation recorded")
	return donation, nil
}

func (s *DonationService) accrueCommission(ctx context.Context, dbTx pgx.Tx, affiliateID uuid.UUID, donation *domain.Donation, now time.Time) error {
	wallet, err := s.walletRepo.GetByAffiliateIDForUpdate(ctx, dbTx, affiliateID)
	if err != nil {
		return apperror.InternalError(err)
	}
	if wallet == nil {
		return apperror.ErrNoWallet()
	}

	commission := donation.Amount.Mul(s.commissionPercent).Div(decimal.NewFromInt(100)).Round(2)
	if !commission.IsPositive() {
		return nil
	}

	return creditEarning(ctx, dbTx, s.ledgerRepo, s.walletRepo, wallet, affiliateID, donation.ID, commission, now)
}
