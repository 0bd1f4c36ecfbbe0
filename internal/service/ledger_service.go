package service

import (
	"context"
	"fmt"
	"time"

	"fundraiser-backend/internal/core/domain"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// creditEarning appends the earning record and the EARNING ledger entry
// and credits the wallet, inside the caller's transaction. The caller
// holds the FOR UPDATE lock on the wallet row.
func creditEarning(
	ctx context.Context,
	dbTx pgx.Tx,
	ledgerRepo ports.LedgerRepository,
	walletRepo ports.WalletRepository,
	wallet *domain.Wallet,
	affiliateID, donationID uuid.UUID,
	amount decimal.Decimal,
	now time.Time,
) error {
	earning := &domain.EarningRecord{
		ID:           uuid.New(),
		AffiliateID:  affiliateID,
		DonationID:   donationID,
		AmountEarned: amount,
		CreatedAt:    now,
	}
	if err := ledgerRepo.CreateEarning(ctx, dbTx, earning); err != nil {
		return apperror.InternalError(err)
	}

	desc := fmt.Sprintf("Commission on donation %s", donationID)
	entry := &domain.LedgerTransaction{
		ID:          uuid.New(),
		WalletID:    wallet.ID,
		Amount:      amount,
		Kind:        domain.TransactionKindEarning,
		Description: &desc,
		CreatedAt:   now,
	}
	if err := ledgerRepo.CreateTransaction(ctx, dbTx, entry); err != nil {
		return apperror.InternalError(err)
	}

	if err := walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, wallet.Balance.Add(amount)); err != nil {
		return apperror.InternalError(err)
	}
	return nil
}

// LedgerService owns wallet balance accrual and the withdrawal lifecycle.
// Every balance mutation happens inside a transaction holding a FOR UPDATE
// lock on the wallet row, so concurrent mutations of one wallet serialize.
type LedgerService struct {
	affiliateRepo  ports.AffiliateRepository
	walletRepo     ports.WalletRepository
	ledgerRepo     ports.LedgerRepository
	withdrawalRepo ports.WithdrawalRepository
	transactor     ports.DBTransactor
	log            zerolog.Logger
}

// NewLedgerService creates the wallet ledger service.
func NewLedgerService(
	affiliateRepo ports.AffiliateRepository,
	walletRepo ports.WalletRepository,
	ledgerRepo ports.LedgerRepository,
	withdrawalRepo ports.WithdrawalRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		affiliateRepo:  affiliateRepo,
		walletRepo:     walletRepo,
		ledgerRepo:     ledgerRepo,
		withdrawalRepo: withdrawalRepo,
		transactor:     transactor,
		log:            log,
	}
}

// RecordEarning appends an earning record plus an EARNING ledger entry and
// increments the wallet balance, all in one transaction.
func (s *LedgerService) RecordEarning(ctx context.Context, affiliateID, donationID uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx)

	wallet, err := s.walletRepo.GetByAffiliateIDForUpdate(ctx, dbTx, affiliateID)
	if err != nil {
		return apperror.InternalError(err)
	}
	if wallet == nil {
		return apperror.ErrNoWallet()
	}

	if err := creditEarning(ctx, dbTx, s.ledgerRepo, s.walletRepo, wallet, affiliateID, donationID, amount, time.Now()); err != nil {
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(err)
	}

	s.log.Info().
		Str("affiliate_id", affiliateID.String()).
		Str("amount", amount.String()).
		Msg("earning recorded")
	return nil
}

// RequestWithdrawal creates a PENDING request. The balance is not touched;
// the sufficiency check here is advisory, the authoritative check runs at
// approval under the wallet lock.
func (s *LedgerService) RequestWithdrawal(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.WithdrawalRequest, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	affiliate, wallet, err := s.walletForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(wallet.Balance) {
		return nil, apperror.ErrInsufficientBalance()
	}

	request := &domain.WithdrawalRequest{
		ID:          uuid.New(),
		AffiliateID: affiliate.ID,
		Amount:      amount,
		Status:      domain.WithdrawalStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := s.withdrawalRepo.Create(ctx, request); err != nil {
		return nil, apperror.InternalError(err)
	}

	s.log.Info().
		Str("request_id", request.ID.String()).
		Str("amount", amount.String()).
		Msg("withdrawal requested")
	return request, nil
}

// Approve debits the wallet, appends a WITHDRAWAL ledger entry, and stamps
// processed_at, atomically. Approving an already approved request is a
// no-op; approving a rejected one is a conflict.
func (s *LedgerService) Approve(ctx context.Context, requestID uuid.UUID) (*domain.WithdrawalRequest, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx)

	request, err := s.withdrawalRepo.GetByIDForUpdate(ctx, dbTx, requestID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if request == nil {
		return nil, apperror.ErrNotFound("withdrawal request")
	}
	if request.Status == domain.WithdrawalStatusApproved {
		return request, nil
	}
	if !request.CanProcess() {
		return nil, apperror.ErrInvalidTransition(string(request.Status))
	}

	wallet, err := s.walletRepo.GetByAffiliateIDForUpdate(ctx, dbTx, request.AffiliateID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if wallet == nil {
		return nil, apperror.ErrNoWallet()
	}
	// The balance may have shrunk since the request was made.
	if request.Amount.GreaterThan(wallet.Balance) {
		return nil, apperror.ErrInsufficientBalance()
	}

	now := time.Now()
	desc := fmt.Sprintf("Withdrawal %s approved", request.ID)
	entry := &domain.LedgerTransaction{
		ID:          uuid.New(),
		WalletID:    wallet.ID,
		Amount:      request.Amount,
		Kind:        domain.TransactionKindWithdrawal,
		Description: &desc,
		CreatedAt:   now,
	}
	if err := s.ledgerRepo.CreateTransaction(ctx, dbTx, entry); err != nil {
		return nil, apperror.InternalError(err)
	}

	newBalance := wallet.Balance.Sub(request.Amount)
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, newBalance); err != nil {
		return nil, apperror.InternalError(err)
	}

	if err := s.withdrawalRepo.MarkProcessed(ctx, dbTx, request.ID, domain.WithdrawalStatusApproved, now); err != nil {
		return nil, apperror.InternalError(err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(err)
	}

	request.Status = domain.WithdrawalStatusApproved
	request.ProcessedAt = &now

	s.log.Info().
		Str("request_id", request.ID.String()).
		Str("amount", request.Amount.String()).
		Msg("withdrawal approved")
	return request, nil
}

// Reject stamps processed_at with no balance effect. Rejecting an already
// rejected request is a no-op; rejecting an approved one is a conflict.
func (s *LedgerService) Reject(ctx context.Context, requestID uuid.UUID) (*domain.WithdrawalRequest, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx)

	request, err := s.withdrawalRepo.GetByIDForUpdate(ctx, dbTx, requestID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if request == nil {
		return nil, apperror.ErrNotFound("withdrawal request")
	}
	if request.Status == domain.WithdrawalStatusRejected {
		return request, nil
	}
	if !request.CanProcess() {
		return nil, apperror.ErrInvalidTransition(string(request.Status))
	}

	now := time.Now()
	if err := s.withdrawalRepo.MarkProcessed(ctx, dbTx, request.ID, domain.WithdrawalStatusRejected, now); err != nil {
		return nil, apperror.InternalError(err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(err)
	}

	request.Status = domain.WithdrawalStatusRejected
	request.ProcessedAt = &now

	s.log.Info().Str("request_id", request.ID.String()).Msg("withdrawal rejected")
	return request, nil
}

// GetWallet returns the user's wallet.
func (s *LedgerService) GetWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	_, wallet, err := s.walletForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// ListTransactions returns the user's ledger entries, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, userID uuid.UUID) ([]domain.LedgerTransaction, error) {
	_, wallet, err := s.walletForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.ListByWallet(ctx, wallet.ID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return entries, nil
}

// ListWithdrawals returns the user's withdrawal requests, newest first.
func (s *LedgerService) ListWithdrawals(ctx context.Context, userID uuid.UUID) ([]domain.WithdrawalRequest, error) {
	affiliate, err := s.affiliateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if affiliate == nil {
		return nil, apperror.ErrNoWallet()
	}
	requests, err := s.withdrawalRepo.ListByAffiliate(ctx, affiliate.ID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return requests, nil
}

// ListPendingWithdrawals returns all PENDING requests, oldest first.
func (s *LedgerService) ListPendingWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.ListPending(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return requests, nil
}

func (s *LedgerService) walletForUser(ctx context.Context, userID uuid.UUID) (*domain.Affiliate, *domain.Wallet, error) {
	affiliate, err := s.affiliateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, apperror.InternalError(err)
	}
	if affiliate == nil {
		return nil, nil, apperror.ErrNoWallet()
	}

	wallet, err := s.walletRepo.GetByAffiliateID(ctx, affiliate.ID)
	if err != nil {
		return nil, nil, apperror.InternalError(err)
	}
	if wallet == nil {
		return nil, nil, apperror.ErrNoWallet()
	}
	return affiliate, wallet, nil
}
