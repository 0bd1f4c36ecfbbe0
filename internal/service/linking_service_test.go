package service

import (
	"context"
	"errors"
	"testing"

	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/internal/core/ports/mocks"
	"fundraiser-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupLinkingService(t *testing.T) (
	*LinkingService,
	*mocks.MockPaymentProvider,
	*mocks.MockBankRepository,
	*mocks.MockBankAccountRepository,
	*mocks.MockUserRepository,
	*gomock.Controller,
) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockPaymentProvider(ctrl)
	bankRepo := mocks.NewMockBankRepository(ctrl)
	accountRepo := mocks.NewMockBankAccountRepository(ctrl)
	userRepo := mocks.NewMockUserRepository(ctrl)

	svc := NewLinkingService(provider, bankRepo, accountRepo, userRepo, zerolog.Nop())
	return svc, provider, bankRepo, accountRepo, userRepo, ctrl
}

func verifiedUser(id uuid.UUID) *domain.User {
	return &domain.User{ID: id, Email: "ada@example.com", EmailVerified: true}
}

func TestLinkingService_LinkAccount_Success(t *testing.T) {
	svc, provider, bankRepo, accountRepo, userRepo, ctrl := setupLinkingService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	bank := &domain.Bank{ID: uuid.New(), Name: "Guaranty Trust Bank", Code: "058"}
	req := ports.LinkAccountRequest{UserID: userID, BankName: "Guaranty Trust Bank", AccountNumber: "0123456789"}

	userRepo.EXPECT().GetByID(ctx, userID).Return(verifiedUser(userID), nil)
	bankRepo.EXPECT().GetByName(ctx, "Guaranty Trust Bank").Return(bank, nil)
	accountRepo.EXPECT().Exists(ctx, userID, bank.ID, "0123456789").Return(false, nil)
	accountRepo.EXPECT().CountForBank(ctx, userID, bank.ID).Return(0, nil)
	provider.EXPECT().ResolveAccount(ctx, "0123456789", "058").
		Return(&ports.ResolvedAccount{AccountNumber: "0123456789", AccountName: "ADA OBI"}, nil)
	accountRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	account, err := svc.LinkAccount(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "ADA OBI", account.AccountName)
	assert.True(t, account.IsVerified)
	assert.Equal(t, bank.ID, account.BankID)
}

func TestLinkingService_LinkAccount_BankNotFound(t *testing.T) {
	svc, _, bankRepo, _, userRepo, ctrl := setupLinkingService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	userRepo.EXPECT().GetByID(ctx, userID).Return(verifiedUser(userID), nil)
	bankRepo.EXPECT().GetByName(ctx, "No Such Bank").Return(nil, nil)

	_, err := svc.LinkAccount(ctx, ports.LinkAccountRequest{UserID: userID, BankName: "No Such Bank", AccountNumber: "0123456789"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "BNK_001", appErr.Code)
}

func TestLinkingService_LinkAccount_DuplicateBeforeProviderCall(t *testing.T) {
	svc, _, bankRepo, accountRepo, userRepo, ctrl := setupLinkingService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	bank := &domain.Bank{ID: uuid.New(), Name: "Guaranty Trust Bank", Code: "058"}

	userRepo.EXPECT().GetByID(ctx, userID).Return(verifiedUser(userID), nil)
	bankRepo.EXPECT().GetByName(ctx, "Guaranty Trust Bank").Return(bank, nil)
	accountRepo.EXPECT().Exists(ctx, userID, bank.ID, "0123456789").Return(true, nil)
	// No ResolveAccount expectation: duplicates never reach the provider.

	_, err := svc.LinkAccount(ctx, ports.LinkAccountRequest{UserID: userID, BankName: "Guaranty Trust Bank", AccountNumber: "0123456789"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "BNK_003", appErr.Code)
}

func TestLinkingService_LinkAccount_PerBankLimit(t *testing.T) {
	svc, _, bankRepo, accountRepo, userRepo, ctrl := setupLinkingService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	bank := &domain.Bank{ID: uuid.New(), Name: "Guaranty Trust Bank", Code: "058"}

	userRepo.EXPECT().GetByID(ctx, userID).Return(verifiedUser(userID), nil)
	bankRepo.EXPECT().GetByName(ctx, "Guaranty Trust Bank").Return(bank, nil)
	accountRepo.EXPECT().Exists(ctx, userID, bank.ID, "0123456789").Return(false, nil)
	accountRepo.EXPECT().CountForBank(ctx, userID, bank.ID).Return(domain.MaxAccountsPerBank, nil)

	_, err := svc.LinkAccount(ctx, ports.LinkAccountRequest{UserID: userID, BankName: "Guaranty Trust Bank", AccountNumber: "0123456789"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "BNK_004", appErr.Code)
}

func TestLinkingService_LinkAccount_ProviderRejects(t *testing.T) {
	svc, provider, bankRepo, accountRepo, userRepo, ctrl := setupLinkingService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	bank := &domain.Bank{ID: uuid.New(), Name: "Guaranty Trust Bank", Code: "058"}

	userRepo.EXPECT().GetByID(ctx, userID).Return(verifiedUser(userID), nil)
	bankRepo.EXPECT().GetByName(ctx, "Guaranty Trust Bank").Return(bank, nil)
	accountRepo.EXPECT().Exists(ctx, userID, bank.ID, "0123456789").Return(false, nil)
	accountRepo.EXPECT().CountForBank(ctx, userID, bank.ID).Return(1, nil)
	provider.EXPECT().ResolveAccount(ctx, "0123456789", "058").
		Return(nil, &ports.ProviderFailure{Message: "Could not resolve account name"})

	_, err := svc.LinkAccount(ctx, ports.LinkAccountRequest{UserID: userID, BankName: "Guaranty Trust Bank", AccountNumber: "0123456789"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "BNK_002", appErr.Code)
	assert.Contains(t, appErr.Message, "Could not resolve account name")
}

func TestLinkingService_LinkAccount_ConcurrentDuplicate(t *testing.T) {
	svc, provider, bankRepo, accountRepo, userRepo, ctrl := setupLinkingService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	bank := &domain.Bank{ID: uuid.New(), Name: "Guaranty Trust Bank", Code: "058"}

	userRepo.EXPECT().GetByID(ctx, userID).Return(verifiedUser(userID), nil)
	bankRepo.EXPECT().GetByName(ctx, "Guaranty Trust Bank").Return(bank, nil)
	accountRepo.EXPECT().Exists(ctx, userID, bank.ID, "0123456789").Return(false, nil)
	accountRepo.EXPECT().CountForBank(ctx, userID, bank.ID).Return(0, nil)
	provider.EXPECT().ResolveAccount(ctx, "0123456789", "058").
		Return(&ports.ResolvedAccount{AccountNumber: "0123456789", AccountName: "ADA OBI"}, nil)
	// A concurrent link won the insert between the Exists check and here.
	accountRepo.EXPECT().Create(ctx, gomock.Any()).Return(ports.ErrUniqueViolation)

	_, err := svc.LinkAccount(ctx, ports.LinkAccountRequest{UserID: userID, BankName: "Guaranty Trust Bank", AccountNumber: "0123456789"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "BNK_003", appErr.Code)
}

func TestLinkingService_LinkAccount_UnverifiedEmail(t *testing.T) {
	svc, _, _, _, userRepo, ctrl := setupLinkingService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	userRepo.EXPECT().GetByID(ctx, userID).Return(&domain.User{ID: userID}, nil)

	_, err := svc.LinkAccount(ctx, ports.LinkAccountRequest{UserID: userID, BankName: "Guaranty Trust Bank", AccountNumber: "0123456789"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_005", appErr.Code)
}

func TestLinkingService_ListAccounts(t *testing.T) {
	svc, _, _, accountRepo, _, ctrl := setupLinkingService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	accounts := []domain.LinkedBankAccount{{ID: uuid.New(), UserID: userID, AccountNumber: "0123456789"}}
	accountRepo.EXPECT().ListForUser(ctx, userID).Return(accounts, nil)

	got, err := svc.ListAccounts(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
