package service

import (
	"context"
	"errors"
	"time"

	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LinkingService validates bank accounts against the payment provider and
// attaches them to users. Duplicate and per-bank limit checks run before
// the provider call so rejected requests never consume a provider lookup.
type LinkingService struct {
	provider    ports.PaymentProvider
	bankRepo    ports.BankRepository
	accountRepo ports.BankAccountRepository
	userRepo    ports.UserRepository
	log         zerolog.Logger
}

// NewLinkingService creates the bank account linking service.
func NewLinkingService(
	provider ports.PaymentProvider,
	bankRepo ports.BankRepository,
	accountRepo ports.BankAccountRepository,
	userRepo ports.UserRepository,
	log zerolog.Logger,
) *LinkingService {
	return &LinkingService{
		provider:    provider,
		bankRepo:    bankRepo,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

// LinkAccount resolves the account against the provider and persists it
// as verified.
func (s *LinkingService) LinkAccount(ctx context.Context, req ports.LinkAccountRequest) (*domain.LinkedBankAccount, error) {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	if !user.EmailVerified {
		return nil, apperror.ErrEmailNotVerified()
	}

	bank, err := s.bankRepo.GetByName(ctx, req.BankName)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if bank == nil {
		return nil, apperror.ErrBankNotFound(req.BankName)
	}

	exists, err := s.accountRepo.Exists(ctx, req.UserID, bank.ID, req.AccountNumber)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if exists {
		return nil, apperror.ErrDuplicateAccount()
	}

	count, err := s.accountRepo.CountForBank(ctx, req.UserID, bank.ID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if count >= domain.MaxAccountsPerBank {
		return nil, apperror.ErrAccountLimitExceeded()
	}

	resolved, err := s.provider.ResolveAccount(ctx, req.AccountNumber, bank.Code)
	if err != nil {
		var pf *ports.ProviderFailure
		if errors.As(err, &pf) {
			return nil, apperror.ErrVerificationFailed(pf.Message)
		}
		return nil, apperror.InternalError(err)
	}

	now := time.Now()
	account := &domain.LinkedBankAccount{
		ID:            uuid.New(),
		UserID:        req.UserID,
		BankID:        bank.ID,
		AccountNumber: req.AccountNumber,
		AccountName:   resolved.AccountName,
		IsVerified:    true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		// The uniqueness check above races with concurrent links; the
		// constraint is the authority.
		if errors.Is(err, ports.ErrUniqueViolation) {
			return nil, apperror.ErrDuplicateAccount()
		}
		return nil, apperror.InternalError(err)
	}

	s.log.Info().
		Str("user_id", req.UserID.String()).
		Str("bank_code", bank.Code).
		Msg("bank account linked")
	return account, nil
}

// ListAccounts returns all accounts linked by the user.
func (s *LinkingService) ListAccounts(ctx context.Context, userID uuid.UUID) ([]domain.LinkedBankAccount, error) {
	accounts, err := s.accountRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return accounts, nil
}
