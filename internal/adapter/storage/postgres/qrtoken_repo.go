package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// QrTokenRepo implements ports.QrTokenRepository.
type QrTokenRepo struct {
	pool Pool
}

// NewQrTokenRepo creates a new QrTokenRepo.
func NewQrTokenRepo(pool Pool) *QrTokenRepo {
	return &QrTokenRepo{pool: pool}
}

// Create inserts a freshly issued token.
func (r *QrTokenRepo) Create(ctx context.Context, t *domain.QrToken) error {
	query := `INSERT INTO qr_tokens (id, customer_id, wallet_id, mode, store_id, state, expires_at, created_at, consumed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.CustomerID, t.WalletID, t.Mode, t.StoreID,
		t.State, t.ExpiresAt, t.CreatedAt, t.ConsumedAt,
	)
	if err != nil {
		return fmt.Errorf("insert qr token: %w", err)
	}
	return nil
}

// GetByID fetches a token by id.
func (r *QrTokenRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.QrToken, error) {
	query := `SELECT id, customer_id, wallet_id, mode, store_id, state, expires_at, created_at, consumed_at
		FROM qr_tokens WHERE id = $1`

	t := &domain.QrToken{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CustomerID, &t.WalletID, &t.Mode, &t.StoreID,
		&t.State, &t.ExpiresAt, &t.CreatedAt, &t.ConsumedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get qr token by id: %w", err)
	}
	return t, nil
}

// Consume is a compare-and-set: only an unexpired ISSUED token moves to
// CONSUMED. Zero rows affected means the token was missing, already
// terminal, or past its expiry.
func (r *QrTokenRepo) Consume(ctx context.Context, tx pgx.Tx, id uuid.UUID, now time.Time) (bool, error) {
	query := `UPDATE qr_tokens SET state = $1, consumed_at = $2
		WHERE id = $3 AND state = $4 AND expires_at > $2`

	tag, err := tx.Exec(ctx, query, domain.QrStateConsumed, now, id, domain.QrStateIssued)
	if err != nil {
		return false, fmt.Errorf("consume qr token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Revoke moves an ISSUED token to REVOKED.
func (r *QrTokenRepo) Revoke(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE qr_tokens SET state = $1 WHERE id = $2 AND state = $3`

	tag, err := r.pool.Exec(ctx, query, domain.QrStateRevoked, id, domain.QrStateIssued)
	if err != nil {
		return false, fmt.Errorf("revoke qr token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SweepExpired marks overdue ISSUED tokens EXPIRED and returns the count.
func (r *QrTokenRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE qr_tokens SET state = $1 WHERE state = $2 AND expires_at <= $3`

	tag, err := r.pool.Exec(ctx, query, domain.QrStateExpired, domain.QrStateIssued, now)
	if err != nil {
		return 0, fmt.Errorf("sweep expired qr tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
