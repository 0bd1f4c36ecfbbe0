package postgres

import (
	"context"
	"testing"
	"time"

	"fundraiser-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func donationColumns() []string {
	return []string{"id", "campaign_id", "donor_id", "amount", "comment", "is_anonymous", "referral_code", "created_at"}
}

func TestDonationRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	donorID := uuid.New()
	comment := "Good luck!"
	referral := "A1B2C3D4"
	d := &domain.Donation{
		ID:           uuid.New(),
		CampaignID:   uuid.New(),
		DonorID:      &donorID,
		Amount:       decimal.NewFromInt(5000),
		Comment:      &comment,
		ReferralCode: &referral,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO donations").
		WithArgs(d.ID, d.CampaignID, d.DonorID, d.Amount, d.Comment, d.IsAnonymous, d.ReferralCode, d.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, d)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_Create_Anonymous(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	// Anonymous webhook donations carry no donor, comment, or referral.
	d := &domain.Donation{
		ID:          uuid.New(),
		CampaignID:  uuid.New(),
		Amount:      decimal.NewFromInt(1000),
		IsAnonymous: true,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO donations").
		WithArgs(d.ID, d.CampaignID, d.DonorID, d.Amount, d.Comment, true, d.ReferralCode, d.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, d)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_ListByCampaign(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	campaignID := uuid.New()
	donorID := uuid.New()
	comment := "Keep going"
	referral := "A1B2C3D4"
	newer := domain.Donation{
		ID:           uuid.New(),
		CampaignID:   campaignID,
		DonorID:      &donorID,
		Amount:       decimal.NewFromInt(5000),
		Comment:      &comment,
		ReferralCode: &referral,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	older := domain.Donation{
		ID:          uuid.New(),
		CampaignID:  campaignID,
		Amount:      decimal.NewFromInt(1000),
		IsAnonymous: true,
		CreatedAt:   time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond),
	}

	mock.ExpectQuery("SELECT .+ FROM donations WHERE campaign_id").
		WithArgs(campaignID).
		WillReturnRows(pgxmock.NewRows(donationColumns()).
			AddRow(newer.ID, newer.CampaignID, newer.DonorID, newer.Amount, newer.Comment, newer.IsAnonymous, newer.ReferralCode, newer.CreatedAt).
			AddRow(older.ID, older.CampaignID, older.DonorID, older.Amount, older.Comment, older.IsAnonymous, older.ReferralCode, older.CreatedAt))

	donations, err := repo.ListByCampaign(context.Background(), campaignID)
	require.NoError(t, err)
	require.Len(t, donations, 2)
	assert.Equal(t, newer.ID, donations[0].ID)
	require.NotNil(t, donations[0].ReferralCode)
	assert.Equal(t, "A1B2C3D4", *donations[0].ReferralCode)
	assert.Equal(t, older.ID, donations[1].ID)
	assert.True(t, donations[1].IsAnonymous)
	assert.Nil(t, donations[1].DonorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_ListByCampaign_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	campaignID := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM donations WHERE campaign_id").
		WithArgs(campaignID).
		WillReturnRows(pgxmock.NewRows(donationColumns()))

	donations, err := repo.ListByCampaign(context.Background(), campaignID)
	require.NoError(t, err)
	assert.Empty(t, donations)
	assert.NoError(t, mock.ExpectationsWereMet())
}
