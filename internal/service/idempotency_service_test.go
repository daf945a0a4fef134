package service

import (
	"context"
	"net/http"
	"testing"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type idemTestDeps struct {
	svc   *IdempotencyServiceImpl
	repo  *mocks.MockIdempotencyRepository
	cache *mocks.MockReplayCache
	ctrl  *gomock.Controller
}

func setupIdempotencyService(t *testing.T) *idemTestDeps {
	ctrl := gomock.NewController(t)
	d := &idemTestDeps{
		repo:  mocks.NewMockIdempotencyRepository(ctrl),
		cache: mocks.NewMockReplayCache(ctrl),
		ctrl:  ctrl,
	}
	d.svc = NewIdempotencyService(d.repo, d.cache, zerolog.Nop())
	return d
}

func testScope() domain.IdempotencyScope {
	return domain.IdempotencyScope{
		ActorType: domain.ActorTypeCustomer,
		ActorID:   uuid.New(),
		Method:    http.MethodPost,
		Path:      "/api/v1/wallets/charge",
		Key:       uuid.New(),
	}
}

func TestIdempotencyService_Begin_FirstDeliveryClaims(t *testing.T) {
	d := setupIdempotencyService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	scope := testScope()

	d.cache.EXPECT().Get(ctx, scope.CacheKey()).Return(nil, nil)
	d.repo.EXPECT().InsertInProgress(ctx, gomock.Any()).Return(true, nil)

	result, err := d.svc.Begin(ctx, scope, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, ports.BeginStateClaimed, result.State)
}

func TestIdempotencyService_Begin_CacheHitReplays(t *testing.T) {
	d := setupIdempotencyService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	scope := testScope()

	d.cache.EXPECT().Get(ctx, scope.CacheKey()).Return(&ports.CachedResponse{
		BodyHash:       "hash-a",
		ResponseStatus: http.StatusCreated,
		ResponseBody:   []byte(`{"ok":true}`),
	}, nil)

	result, err := d.svc.Begin(ctx, scope, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, ports.BeginStateReplay, result.State)
	assert.Equal(t, http.StatusCreated, result.ResponseStatus)
	assert.Equal(t, []byte(`{"ok":true}`), result.ResponseBody)
}

func TestIdempotencyService_Begin_BodyHashConflict(t *testing.T) {
	d := setupIdempotencyService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	scope := testScope()

	d.cache.EXPECT().Get(ctx, scope.CacheKey()).Return(&ports.CachedResponse{BodyHash: "hash-a"}, nil)

	result, err := d.svc.Begin(ctx, scope, "hash-b")
	assert.Nil(t, result)
	assertAppError(t, err, "IDEM_001")
}

func TestIdempotencyService_Begin_DoneRecordReplaysAndFillsCache(t *testing.T) {
	d := setupIdempotencyService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	scope := testScope()

	d.cache.EXPECT().Get(ctx, scope.CacheKey()).Return(nil, nil)
	d.repo.EXPECT().InsertInProgress(ctx, gomock.Any()).Return(false, nil)
	d.repo.EXPECT().Get(ctx, scope).Return(&domain.IdempotencyRecord{
		Scope:          scope,
		BodyHash:       "hash-a",
		Status:         domain.IdempotencyStatusDone,
		ResponseStatus: http.StatusOK,
		ResponseBody:   []byte(`{"balance":100}`),
	}, nil)
	d.cache.EXPECT().Set(ctx, scope.CacheKey(), gomock.Any(), replayCacheTTL).Return(nil)

	result, err := d.svc.Begin(ctx, scope, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, ports.BeginStateReplay, result.State)
	assert.Equal(t, http.StatusOK, result.ResponseStatus)
}

func TestIdempotencyService_Begin_ConcurrentDuplicateInProgress(t *testing.T) {
	d := setupIdempotencyService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	scope := testScope()

	d.cache.EXPECT().Get(ctx, scope.CacheKey()).Return(nil, nil)
	d.repo.EXPECT().InsertInProgress(ctx, gomock.Any()).Return(false, nil)
	d.repo.EXPECT().Get(ctx, scope).Return(&domain.IdempotencyRecord{
		Scope:    scope,
		BodyHash: "hash-a",
		Status:   domain.IdempotencyStatusInProgress,
	}, nil)

	result, err := d.svc.Begin(ctx, scope, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, ports.BeginStateInProgress, result.State)
}

func TestIdempotencyService_Complete_PersistsAndCaches(t *testing.T) {
	d := setupIdempotencyService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	scope := testScope()
	body := []byte(`{"balance":3000}`)

	d.repo.EXPECT().MarkDone(ctx, scope, http.StatusCreated, body).Return(nil)
	d.repo.EXPECT().Get(ctx, scope).Return(&domain.IdempotencyRecord{
		Scope:          scope,
		BodyHash:       "hash-a",
		Status:         domain.IdempotencyStatusDone,
		ResponseStatus: http.StatusCreated,
		ResponseBody:   body,
	}, nil)
	d.cache.EXPECT().Set(ctx, scope.CacheKey(), gomock.Any(), replayCacheTTL).Return(nil)

	err := d.svc.Complete(ctx, scope, http.StatusCreated, body)
	require.NoError(t, err)
}

func TestIdempotencyService_Abandon_ReleasesScope(t *testing.T) {
	d := setupIdempotencyService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	scope := testScope()

	d.repo.EXPECT().Delete(ctx, scope).Return(nil)
	d.cache.EXPECT().Delete(ctx, scope.CacheKey()).Return(nil)

	err := d.svc.Abandon(ctx, scope)
	require.NoError(t, err)
}
