package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/internal/core/ports/mocks"
	"fundraiser-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupDonationService(t *testing.T) (
	*DonationService,
	*mocks.MockCampaignRepository,
	*mocks.MockDonationRepository,
	*mocks.MockAffiliateRepository,
	*mocks.MockWalletRepository,
	*mocks.MockLedgerRepository,
	*mocks.MockDBTransactor,
	*gomock.Controller,
) {
	ctrl := gomock.NewController(t)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	donationRepo := mocks.NewMockDonationRepository(ctrl)
	affiliateRepo := mocks.NewMockAffiliateRepository(ctrl)
	walletRepo := mocks.NewMockWalletRepository(ctrl)
	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	transactor := mocks.NewMockDBTransactor(ctrl)

	svc := NewDonationService(campaignRepo, donationRepo, affiliateRepo, walletRepo, ledgerRepo, transactor, 2.5, zerolog.Nop())
	return svc, campaignRepo, donationRepo, affiliateRepo, walletRepo, ledgerRepo, transactor, ctrl
}

func activeCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:       uuid.New(),
		OwnerID:  uuid.New(),
		Title:    "Clean Water",
		Goal:     decimal.NewFromInt(100000),
		IsActive: true,
	}
}

func TestDonationService_Donate_NoReferral(t *testing.T) {
	svc, campaignRepo, donationRepo, _, _, _, transactor, ctrl := setupDonationService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	campaign := activeCampaign()
	tx := &mockTx{}

	campaignRepo.EXPECT().GetByID(ctx, campaign.ID).Return(campaign, nil)
	transactor.EXPECT().Begin(ctx).Return(tx, nil)
	donationRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	donation, err := svc.Donate(ctx, ports.DonateRequest{
		CampaignID: campaign.ID,
		Amount:     decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	require.NotNil(t, donation)
	assert.True(t, donation.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Nil(t, donation.ReferralCode)
}

func TestDonationService_Donate_WithReferralAccruesCommission(t *testing.T) {
	svc, campaignRepo, donationRepo, affiliateRepo, walletRepo, ledgerRepo, transactor, ctrl := setupDonationService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	campaign := activeCampaign()
	code := "A1B2C3D4"
	affiliate := &domain.Affiliate{ID: uuid.New(), ReferralCode: code}
	wallet := &domain.Wallet{ID: uuid.New(), AffiliateID: affiliate.ID, Balance: decimal.NewFromInt(100)}
	tx := &mockTx{}

	campaignRepo.EXPECT().GetByID(ctx, campaign.ID).Return(campaign, nil)
	affiliateRepo.EXPECT().GetByReferralCode(ctx, code).Return(affiliate, nil)
	transactor.EXPECT().Begin(ctx).Return(tx, nil)
	donationRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	walletRepo.EXPECT().GetByAffiliateIDForUpdate(ctx, tx, affiliate.ID).Return(wallet, nil)
	// 2.5% of 5000 = 125.00
	ledgerRepo.EXPECT().CreateEarning(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, earning *domain.EarningRecord) error {
			assert.True(t, earning.AmountEarned.Equal(decimal.NewFromInt(125)))
			assert.Equal(t, affiliate.ID, earning.AffiliateID)
			return nil
		})
	ledgerRepo.EXPECT().CreateTransaction(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, entry *domain.LedgerTransaction) error {
			assert.Equal(t, domain.TransactionKindEarning, entry.Kind)
			assert.True(t, entry.Amount.Equal(decimal.NewFromInt(125)))
			return nil
		})
	walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, _ uuid.UUID, balance decimal.Decimal) error {
			assert.True(t, balance.Equal(decimal.NewFromInt(225)))
			return nil
		})

	donation, err := svc.Donate(ctx, ports.DonateRequest{
		CampaignID:   campaign.ID,
		Amount:       decimal.NewFromInt(5000),
		ReferralCode: &code,
	})
	require.NoError(t, err)
	require.NotNil(t, donation)
}

func TestDonationService_Donate_UnknownReferralDropsAttribution(t *testing.T) {
	svc, campaignRepo, donationRepo, affiliateRepo, _, _, transactor, ctrl := setupDonationService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	campaign := activeCampaign()
	code := "DEADBEEF"
	tx := &mockTx{}

	campaignRepo.EXPECT().GetByID(ctx, campaign.ID).Return(campaign, nil)
	affiliateRepo.EXPECT().GetByReferralCode(ctx, code).Return(nil, nil)
	transactor.EXPECT().Begin(ctx).Return(tx, nil)
	// The donation is still recorded; no commission writes happen.
	donationRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	donation, err := svc.Donate(ctx, ports.DonateRequest{
		CampaignID:   campaign.ID,
		Amount:       decimal.NewFromInt(5000),
		ReferralCode: &code,
	})
	require.NoError(t, err)
	require.NotNil(t, donation)
}

func TestDonationService_Donate_CampaignNotFound(t *testing.T) {
	svc, campaignRepo, _, _, _, _, _, ctrl := setupDonationService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	campaignID := uuid.New()
	campaignRepo.EXPECT().GetByID(ctx, campaignID).Return(nil, nil)

	_, err := svc.Donate(ctx, ports.DonateRequest{CampaignID: campaignID, Amount: decimal.NewFromInt(100)})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "RES_001", appErr.Code)
}

func TestDonationService_Donate_ExpiredCampaign(t *testing.T) {
	svc, campaignRepo, _, _, _, _, _, ctrl := setupDonationService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	past := time.Now().Add(-24 * time.Hour)
	campaign := activeCampaign()
	campaign.EndDate = &past

	campaignRepo.EXPECT().GetByID(ctx, campaign.ID).Return(campaign, nil)

	_, err := svc.Donate(ctx, ports.DonateRequest{CampaignID: campaign.ID, Amount: decimal.NewFromInt(100)})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VAL_001", appErr.Code)
}

func TestDonationService_Donate_InactiveCampaign(t *testing.T) {
	svc, campaignRepo, _, _, _, _, _, ctrl := setupDonationService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	campaign := activeCampaign()
	campaign.IsActive = false

	campaignRepo.EXPECT().GetByID(ctx, campaign.ID).Return(campaign, nil)

	_, err := svc.Donate(ctx, ports.DonateRequest{CampaignID: campaign.ID, Amount: decimal.NewFromInt(100)})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VAL_001", appErr.Code)
}

func TestDonationService_Donate_NonPositiveAmount(t *testing.T) {
	svc, _, _, _, _, _, _, ctrl := setupDonationService(t)
	defer ctrl.Finish()

	_, err := svc.Donate(context.Background(), ports.DonateRequest{CampaignID: uuid.New(), Amount: decimal.Zero})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "WAL_003", appErr.Code)
}

func TestDonationService_Donate_CommissionRounding(t *testing.T) {
	svc, campaignRepo, donationRepo, affiliateRepo, walletRepo, ledgerRepo, transactor, ctrl := setupDonationService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	campaign := activeCampaign()
	code := "A1B2C3D4"
	affiliate := &domain.Affiliate{ID: uuid.New(), ReferralCode: code}
	wallet := &domain.Wallet{ID: uuid.New(), AffiliateID: affiliate.ID, Balance: decimal.Zero}
	tx := &mockTx{}

	campaignRepo.EXPECT().GetByID(ctx, campaign.ID).Return(campaign, nil)
	affiliateRepo.EXPECT().GetByReferralCode(ctx, code).Return(affiliate, nil)
	transactor.EXPECT().Begin(ctx).Return(tx, nil)
	donationRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	walletRepo.EXPECT().GetByAffiliateIDForUpdate(ctx, tx, affiliate.ID).Return(wallet, nil)
	// 2.5% of 333.33 = 8.33325, rounded to 8.33
	expected := decimal.RequireFromString("8.33")
	ledgerRepo.EXPECT().CreateEarning(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, earning *domain.EarningRecord) error {
			assert.True(t, earning.AmountEarned.Equal(expected), "got %s", earning.AmountEarned)
			return nil
		})
	ledgerRepo.EXPECT().CreateTransaction(ctx, tx, gomock.Any()).Return(nil)
	walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, gomock.Any()).Return(nil)

	_, err := svc.Donate(ctx, ports.DonateRequest{
		CampaignID:   campaign.ID,
		Amount:       decimal.RequireFromString("333.33"),
		ReferralCode: &code,
	})
	require.NoError(t, err)
}
