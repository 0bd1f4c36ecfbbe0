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

const bankCacheTTL = time.Hour

// Directory defaults applied when the provider omits the fields.
const (
	defaultCountry  = "Nigeria"
	defaultCurrency = "NGN"
)

// BankSyncService ingests the provider's bank directory and serves reads
// through a cache.
type BankSyncService struct {
	provider  ports.PaymentProvider
	bankRepo  ports.BankRepository
	bankCache ports.BankCache
	log       zerolog.Logger
}

// NewBankSyncService creates the bank directory sync service.
func NewBankSyncService(
	provider ports.PaymentProvider,
	bankRepo ports.BankRepository,
	bankCache ports.BankCache,
	log zerolog.Logger,
) *BankSyncService {
	return &BankSyncService{
		provider:  provider,
		bankRepo:  bankRepo,
		bankCache: bankCache,
		log:       log,
	}
}

// Sync fetches the full directory and upserts each entry keyed by routing
// code. A fetch failure aborts the run; an upsert failure aborts mid-run,
// leaving prior upserts committed (each upsert is independent). Returns
// the number of banks processed.
func (s *BankSyncService) Sync(ctx context.Context) (int, error) {
	providerBanks, err := s.provider.FetchBanks(ctx)
	if err != nil {
		var pf *ports.ProviderFailure
		if errors.As(err, &pf) {
			return 0, apperror.ErrProviderError(pf.Message)
		}
		return 0, apperror.InternalError(err)
	}

	count := 0
	for _, pb := range providerBanks {
		if pb.Code == "" || pb.Name == "" {
			s.log.Warn().Str("slug", pb.Slug).Msg("skipping bank entry with missing code or name")
			continue
		}

		now := time.Now()
		bank := &domain.Bank{
			ID:        uuid.New(),
			Name:      pb.Name,
			Slug:      pb.Slug,
			Code:      pb.Code,
			Country:   pb.Country,
			Currency:  pb.Currency,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if pb.LongCode != "" {
			bank.LongCode = &pb.LongCode
		}
		if pb.Logo != "" {
			bank.Logo = &pb.Logo
		}
		if bank.Country == "" {
			bank.Country = defaultCountry
		}
		if bank.Currency == "" {
			bank.Currency = defaultCurrency
		}

		if err := s.bankRepo.Upsert(ctx, bank); err != nil {
			return count, apperror.InternalError(err)
		}
		count++
	}

	if err := s.bankCache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate bank cache after sync")
	}

	s.log.Info().Int("count", count).Msg("bank directory synced")
	return count, nil
}

// ListBanks returns the directory, reading through the cache.
func (s *BankSyncService) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	cached, err := s.bankCache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("bank cache read failed, falling back to database")
	} else if cached != nil {
		return cached, nil
	}

	banks, err := s.bankRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	if err := s.bankCache.Set(ctx, banks, bankCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("bank cache write failed")
	}
	return banks, nil
}
