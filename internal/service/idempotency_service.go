package service

import (
	"context"
	"fmt"
	"time"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// How long a canonical response stays in the Redis replay cache.
const replayCacheTTL = 24 * time.Hour

// IdempotencyServiceImpl implements ports.IdempotencyService. The Postgres
// record is authoritative; Redis only fronts it as a replay fast path, so a
// cache wipe degrades to extra database reads, never to duplicate effects.
type IdempotencyServiceImpl struct {
	repo  ports.IdempotencyRepository
	cache ports.ReplayCache
	log   zerolog.Logger
}

// NewIdempotencyService creates a new IdempotencyServiceImpl.
func NewIdempotencyService(repo ports.IdempotencyRepository, cache ports.ReplayCache, log zerolog.Logger) *IdempotencyServiceImpl {
	return &IdempotencyServiceImpl{repo: repo, cache: cache, log: log}
}

// Begin claims the scope or classifies the duplicate. A duplicate key with a
// different body hash is a client bug and is rejected outright.
func (s *IdempotencyServiceImpl) Begin(ctx context.Context, scope domain.IdempotencyScope, bodyHash string) (*ports.BeginResult, error) {
	cached, err := s.cache.Get(ctx, scope.CacheKey())
	if err != nil {
		s.log.Warn().Err(err).Str("scope", scope.CacheKey()).Msg("replay cache read failed; falling through to database")
	}
	if cached != nil {
		if cached.BodyHash != bodyHash {
			return nil, apperror.ErrIdempotencyKeyConflict()
		}
		return &ports.BeginResult{
			State:          ports.BeginStateReplay,
			ResponseStatus: cached.ResponseStatus,
			ResponseBody:   cached.ResponseBody,
		}, nil
	}

	record := domain.NewIdempotencyRecord(scope, bodyHash)
	won, err := s.repo.InsertInProgress(ctx, record)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("claim idempotency scope: %w", err))
	}
	if won {
		return &ports.BeginResult{State: ports.BeginStateClaimed}, nil
	}

	existing, err := s.repo.Get(ctx, scope)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("read idempotency record: %w", err))
	}
	if existing == nil {
		// Lost the insert race and the winner abandoned in between. Let the
		// client retry rather than double-claim within one request.
		return &ports.BeginResult{State: ports.BeginStateInProgress}, nil
	}
	if existing.BodyHash != bodyHash {
		return nil, apperror.ErrIdempotencyKeyConflict()
	}
	if existing.IsDone() {
		s.fillCache(ctx, scope, existing)
		return &ports.BeginResult{
			State:          ports.BeginStateReplay,
			ResponseStatus: existing.ResponseStatus,
			ResponseBody:   existing.ResponseBody,
		}, nil
	}
	return &ports.BeginResult{State: ports.BeginStateInProgress}, nil
}

// Complete persists the canonical response and fills the replay cache.
func (s *IdempotencyServiceImpl) Complete(ctx context.Context, scope domain.IdempotencyScope, status int, body []byte) error {
	if err := s.repo.MarkDone(ctx, scope, status, body); err != nil {
		return apperror.InternalError(fmt.Errorf("mark idempotency done: %w", err))
	}

	record, err := s.repo.Get(ctx, scope)
	if err != nil {
		s.log.Warn().Err(err).Str("scope", scope.CacheKey()).Msg("failed to reload idempotency record for cache fill")
		return nil
	}
	if record != nil {
		s.fillCache(ctx, scope, record)
	}
	return nil
}

// Abandon releases the scope after a server-side failure so the client's
// retry gets a clean claim.
func (s *IdempotencyServiceImpl) Abandon(ctx context.Context, scope domain.IdempotencyScope) error {
	if err := s.repo.Delete(ctx, scope); err != nil {
		return apperror.InternalError(fmt.Errorf("release idempotency scope: %w", err))
	}
	if err := s.cache.Delete(ctx, scope.CacheKey()); err != nil {
		s.log.Warn().Err(err).Str("scope", scope.CacheKey()).Msg("failed to clear replay cache entry")
	}
	return nil
}

// fillCache writes the canonical response to Redis, best effort.
func (s *IdempotencyServiceImpl) fillCache(ctx context.Context, scope domain.IdempotencyScope, record *domain.IdempotencyRecord) {
	entry := ports.CachedResponse{
		BodyHash:       record.BodyHash,
		ResponseStatus: record.ResponseStatus,
		ResponseBody:   record.ResponseBody,
	}
	if err := s.cache.Set(ctx, scope.CacheKey(), entry, replayCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("scope", scope.CacheKey()).Msg("failed to fill replay cache")
	}
}
