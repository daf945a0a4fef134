package postgres

import (
	"context"
	"errors"
	"fmt"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// IdempotencyRepo implements ports.IdempotencyRepository. It is the
// authoritative store; the Redis replay cache only fronts it.
type IdempotencyRepo struct {
	pool Pool
}

// NewIdempotencyRepo creates a new IdempotencyRepo.
func NewIdempotencyRepo(pool Pool) *IdempotencyRepo {
	return &IdempotencyRepo{pool: pool}
}

// InsertInProgress claims a scope with an IN_PROGRESS row. ON CONFLICT DO
// NOTHING makes the claim race-free: exactly one concurrent caller wins.
func (r *IdempotencyRepo) InsertInProgress(ctx context.Context, rec *domain.IdempotencyRecord) (bool, error) {
	query := `INSERT INTO idempotency_keys
		(actor_type, actor_id, http_method, path, key_uuid, body_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (actor_type, actor_id, http_method, path, key_uuid) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		rec.Scope.ActorType, rec.Scope.ActorID, rec.Scope.Method, rec.Scope.Path, rec.Scope.Key,
		rec.BodyHash, rec.Status, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert idempotency key: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Get fetches the record for a scope.
func (r *IdempotencyRepo) Get(ctx context.Context, scope domain.IdempotencyScope) (*domain.IdempotencyRecord, error) {
	query := `SELECT body_hash, status, response_status, response_body, created_at, updated_at
		FROM idempotency_keys
		WHERE actor_type = $1 AND actor_id = $2 AND http_method = $3 AND path = $4 AND key_uuid = $5`

	rec := &domain.IdempotencyRecord{Scope: scope}
	var responseStatus *int
	err := r.pool.QueryRow(ctx, query,
		scope.ActorType, scope.ActorID, scope.Method, scope.Path, scope.Key,
	).Scan(&rec.BodyHash, &rec.Status, &responseStatus, &rec.ResponseBody, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}
	if responseStatus != nil {
		rec.ResponseStatus = *responseStatus
	}
	return rec, nil
}

// MarkDone persists the canonical response. A DONE row never changes again.
func (r *IdempotencyRepo) MarkDone(ctx context.Context, scope domain.IdempotencyScope, responseStatus int, responseBody []byte) error {
	query := `UPDATE idempotency_keys
		SET status = $1, response_status = $2, response_body = $3, updated_at = NOW()
		WHERE actor_type = $4 AND actor_id = $5 AND http_method = $6 AND path = $7 AND key_uuid = $8
		  AND status = $9`

	tag, err := r.pool.Exec(ctx, query,
		domain.IdempotencyStatusDone, responseStatus, responseBody,
		scope.ActorType, scope.ActorID, scope.Method, scope.Path, scope.Key,
		domain.IdempotencyStatusInProgress,
	)
	if err != nil {
		return fmt.Errorf("mark idempotency key done: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("idempotency key not in progress: %s", scope.CacheKey())
	}
	return nil
}

// Delete releases a scope after a failed attempt so the client may retry.
func (r *IdempotencyRepo) Delete(ctx context.Context, scope domain.IdempotencyScope) error {
	query := `DELETE FROM idempotency_keys
		WHERE actor_type = $1 AND actor_id = $2 AND http_method = $3 AND path = $4 AND key_uuid = $5`

	_, err := r.pool.Exec(ctx, query,
		scope.ActorType, scope.ActorID, scope.Method, scope.Path, scope.Key,
	)
	if err != nil {
		return fmt.Errorf("delete idempotency key: %w", err)
	}
	return nil
}
