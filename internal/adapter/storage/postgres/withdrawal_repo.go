package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fundraiser-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WithdrawalRepo implements ports.WithdrawalRepository.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

// Create inserts a new withdrawal request.
func (r *WithdrawalRepo) Create(ctx context.Context, w *domain.WithdrawalRequest) error {
	query := `INSERT INTO withdrawal_requests (id, affiliate_id, amount, status, created_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query, w.ID, w.AffiliateID, w.Amount, w.Status, w.CreatedAt, w.ProcessedAt)
	if err != nil {
		return fmt.Errorf("insert withdrawal request: %w", err)
	}
	return nil
}

// GetByID fetches a withdrawal request without locking.
func (r *WithdrawalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `SELECT id, affiliate_id, amount, status, created_at, processed_at
		FROM withdrawal_requests WHERE id = $1`

	return scanWithdrawal(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate fetches a withdrawal request with pessimistic locking.
// This MUST be called within a transaction; it serializes approval
// against concurrent re-approval.
func (r *WithdrawalRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `SELECT id, affiliate_id, amount, status, created_at, processed_at
		FROM withdrawal_requests WHERE id = $1 FOR UPDATE`

	return scanWithdrawal(tx.QueryRow(ctx, query, id))
}

// ListByAffiliate returns an affiliate's requests, newest first.
func (r *WithdrawalRepo) ListByAffiliate(ctx context.Context, affiliateID uuid.UUID) ([]domain.WithdrawalRequest, error) {
	query := `SELECT id, affiliate_id, amount, status, created_at, processed_at
		FROM withdrawal_requests WHERE affiliate_id = $1 ORDER BY created_at DESC`

	return r.list(ctx, query, affiliateID)
}

// ListPending returns all PENDING requests, oldest first.
func (r *WithdrawalRepo) ListPending(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	query := `SELECT id, affiliate_id, amount, status, created_at, processed_at
		FROM withdrawal_requests WHERE status = 'PENDING' ORDER BY created_at`

	return r.list(ctx, query)
}

// MarkProcessed transitions status and stamps processed_at in one write.
// The guard keeps processed_at immutable once set.
func (r *WithdrawalRepo) MarkProcessed(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.WithdrawalStatus, processedAt time.Time) error {
	query := `UPDATE withdrawal_requests SET status = $1, processed_at = $2
		WHERE id = $3 AND processed_at IS NULL`

	tag, err := tx.Exec(ctx, query, status, processedAt, id)
	if err != nil {
		return fmt.Errorf("mark withdrawal processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("withdrawal request %s already processed", id)
	}
	return nil
}

func (r *WithdrawalRepo) list(ctx context.Context, query string, args ...any) ([]domain.WithdrawalRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list withdrawal requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.WithdrawalRequest
	for rows.Next() {
		w := domain.WithdrawalRequest{}
		if err := rows.Scan(&w.ID, &w.AffiliateID, &w.Amount, &w.Status, &w.CreatedAt, &w.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan withdrawal row: %w", err)
		}
		requests = append(requests, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate withdrawal rows: %w", err)
	}
	return requests, nil
}

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	w := &domain.WithdrawalRequest{}
	err := row.Scan(&w.ID, &w.AffiliateID, &w.Amount, &w.Status, &w.CreatedAt, &w.ProcessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan withdrawal request: %w", err)
	}
	return w, nil
}
