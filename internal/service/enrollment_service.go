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
	"github.com/shopspring/decimal"
)

// referralCodeRetries bounds retries on referral code collisions before
// the request is surfaced as a conflict.
const referralCodeRetries = 3

// EnrollmentService promotes users to affiliates. Enrollment provisions a
// payout subaccount with the provider, then creates the affiliate and its
// zero-balance wallet in one transaction.
type EnrollmentService struct {
	provider          ports.PaymentProvider
	affiliateRepo     ports.AffiliateRepository
	walletRepo        ports.WalletRepository
	accountRepo       ports.BankAccountRepository
	bankRepo          ports.BankRepository
	userRepo          ports.UserRepository
	transactor        ports.DBTransactor
	commissionPercent float64
	log               zerolog.Logger
}

// NewEnrollmentService creates the affiliate enrollment service.
func NewEnrollmentService(
	provider ports.PaymentProvider,
	affiliateRepo ports.AffiliateRepository,
	walletRepo ports.WalletRepository,
	accountRepo ports.BankAccountRepository,
	bankRepo ports.BankRepository,
	userRepo ports.UserRepository,
	transactor ports.DBTransactor,
	commissionPercent float64,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		provider:          provider,
		affiliateRepo:     affiliateRepo,
		walletRepo:        walletRepo,
		accountRepo:       accountRepo,
		bankRepo:          bankRepo,
		userRepo:          userRepo,
		transactor:        transactor,
		commissionPercent: commissionPercent,
		log:               log,
	}
}

// Enroll turns a user into an affiliate. Preconditions are checked before
// the provider call: not already enrolled, and at least one linked bank
// account to settle payouts into.
func (s *EnrollmentService) Enroll(ctx context.Context, userID uuid.UUID) (*ports.EnrollmentResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	if !user.EmailVerified {
		return nil, apperror.ErrEmailNotVerified()
	}

	existing, err := s.affiliateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyEnrolled()
	}

	account, err := s.accountRepo.FirstForUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if account == nil {
		return nil, apperror.ErrMissingBankAccount()
	}

	bank, err := s.bankRepo.GetByID(ctx, account.BankID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if bank == nil {
		return nil, apperror.InternalError(errors.New("linked account references missing bank"))
	}

	sub, err := s.provider.CreateSubaccount(ctx, ports.SubaccountRequest{
		BusinessName:     user.FullName(),
		SettlementBank:   bank.Code,
		AccountNumber:    account.AccountNumber,
		PercentageCharge: s.commissionPercent,
	})
	if err != nil {
		var pf *ports.ProviderFailure
		if errors.As(err, &pf) {
			return nil, apperror.ErrProviderError(pf.Message)
		}
		return nil, apperror.InternalError(err)
	}

	// Affiliate and wallet commit or roll back together. Referral code
	// collisions retry inside fresh transactions with a fresh code.
	for attempt := 0; attempt < referralCodeRetries; attempt++ {
		result, err := s.createAffiliateWithWallet(ctx, userID, sub.SubaccountCode)
		if err == nil {
			s.log.Info().
				Str("user_id", userID.String()).
				Str("referral_code", result.Affiliate.ReferralCode).
				Msg("affiliate enrolled")
			return result, nil
		}
		if !errors.Is(err, ports.ErrUniqueViolation) {
			return nil, apperror.InternalError(err)
		}
		// The user_id column is also unique; a concurrent enrollment for
		// the same user must not retry with a new code.
		if again, lookupErr := s.affiliateRepo.GetByUserID(ctx, userID); lookupErr == nil && again != nil {
			return nil, apperror.ErrAlreadyEnrolled()
		}
		s.log.Warn().Int("attempt", attempt+1).Msg("referral code collision, retrying")
	}
	return nil, apperror.ErrReferralCodeConflict()
}

func (s *EnrollmentService) createAffiliateWithWallet(ctx context.Context, userID uuid.UUID, subaccountCode string) (*ports.EnrollmentResult, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx)

	now := time.Now()
	affiliate := &domain.Affiliate{
		ID:             uuid.New(),
		UserID:         userID,
		ReferralCode:   domain.NewReferralCode(),
		SubaccountCode: subaccountCode,
		CreatedAt:      now,
	}
	if err := s.affiliateRepo.Create(ctx, dbTx, affiliate); err != nil {
		return nil, err
	}

	wallet := &domain.Wallet{
		ID:          uuid.New(),
		AffiliateID: affiliate.ID,
		Balance:     decimal.Zero,
		UpdatedAt:   now,
	}
	if err := s.walletRepo.Create(ctx, dbTx, wallet); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, err
	}
	return &ports.EnrollmentResult{Affiliate: affiliate, Wallet: wallet}, nil
}
