package service

import (
	"context"
	"testing"
	"time"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type qrTestDeps struct {
	svc        *QrTokenServiceImpl
	repo       *mocks.MockQrTokenRepository
	walletRepo *mocks.MockWalletRepository
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupQrTokenService(t *testing.T) *qrTestDeps {
	ctrl := gomock.NewController(t)
	d := &qrTestDeps{
		repo:       mocks.NewMockQrTokenRepository(ctrl),
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewQrTokenService(d.repo, d.walletRepo, d.transactor, zerolog.Nop())
	return d
}

func TestQrTokenService_Create_Success(t *testing.T) {
	d := setupQrTokenService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	customerID := uuid.New()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{
		ID:              walletID,
		Kind:            domain.WalletKindIndividual,
		OwnerCustomerID: &customerID,
		Status:          domain.WalletStatusActive,
	}, nil)
	d.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	token, err := d.svc.Create(ctx, ports.CreateQrTokenRequest{
		CustomerID: customerID,
		WalletID:   walletID,
		Mode:       domain.QrModeCPQR,
		TTLSeconds: 60,
	})
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, domain.QrStateIssued, token.State)
	assert.WithinDuration(t, time.Now().Add(60*time.Second), token.ExpiresAt, 2*time.Second)
}

func TestQrTokenService_Create_TTLOutOfBounds(t *testing.T) {
	d := setupQrTokenService(t)
	defer d.ctrl.Finish()

	for _, ttl := range []int{5, 0, 301} {
		token, err := d.svc.Create(context.Background(), ports.CreateQrTokenRequest{
			CustomerID: uuid.New(),
			WalletID:   uuid.New(),
			Mode:       domain.QrModeCPQR,
			TTLSeconds: ttl,
		})
		assert.Nil(t, token)
		assertAppError(t, err, "VAL_001")
	}
}

func TestQrTokenService_Create_NotOwner(t *testing.T) {
	d := setupQrTokenService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	ownerID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{
		ID:              walletID,
		OwnerCustomerID: &ownerID,
		Status:          domain.WalletStatusActive,
	}, nil)

	token, err := d.svc.Create(ctx, ports.CreateQrTokenRequest{
		CustomerID: uuid.New(),
		WalletID:   walletID,
		Mode:       domain.QrModeCPQR,
		TTLSeconds: 60,
	})
	assert.Nil(t, token)
	assertAppError(t, err, "AUTH_002")
}

func TestQrTokenService_Consume_WinsExactlyOnce(t *testing.T) {
	d := setupQrTokenService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tokenID := uuid.New()
	tx := &mockTx{}
	consumedAt := time.Now().UTC()

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.repo.EXPECT().Consume(ctx, tx, tokenID, gomock.Any()).Return(true, nil)
	d.repo.EXPECT().GetByID(ctx, tokenID).Return(&domain.QrToken{
		ID:         tokenID,
		State:      domain.QrStateConsumed,
		ConsumedAt: &consumedAt,
	}, nil)

	token, err := d.svc.Consume(ctx, tokenID)
	require.NoError(t, err)
	assert.Equal(t, domain.QrStateConsumed, token.State)
}

func TestQrTokenService_Consume_ClassifiesLoser(t *testing.T) {
	tests := []struct {
		name     string
		token    *domain.QrToken
		wantCode string
	}{
		{"already consumed", &domain.QrToken{State: domain.QrStateConsumed, ExpiresAt: time.Now().Add(time.Minute)}, "QR_002"},
		{"revoked", &domain.QrToken{State: domain.QrStateRevoked, ExpiresAt: time.Now().Add(time.Minute)}, "QR_003"},
		{"swept expired", &domain.QrToken{State: domain.QrStateExpired, ExpiresAt: time.Now().Add(-time.Minute)}, "QR_001"},
		{"overdue but unswept", &domain.QrToken{State: domain.QrStateIssued, ExpiresAt: time.Now().Add(-time.Minute)}, "QR_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupQrTokenService(t)
			defer d.ctrl.Finish()

			ctx := context.Background()
			tokenID := uuid.New()
			tx := &mockTx{}
			tt.token.ID = tokenID

			d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
			d.repo.EXPECT().Consume(ctx, tx, tokenID, gomock.Any()).Return(false, nil)
			d.repo.EXPECT().GetByID(ctx, tokenID).Return(tt.token, nil)

			token, err := d.svc.Consume(ctx, tokenID)
			assert.Nil(t, token)
			assertAppError(t, err, tt.wantCode)
		})
	}
}

func TestQrTokenService_Revoke_Success(t *testing.T) {
	d := setupQrTokenService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	customerID := uuid.New()
	tokenID := uuid.New()

	d.repo.EXPECT().GetByID(ctx, tokenID).Return(&domain.QrToken{
		ID:         tokenID,
		CustomerID: customerID,
		State:      domain.QrStateIssued,
	}, nil)
	d.repo.EXPECT().Revoke(ctx, tokenID).Return(true, nil)

	err := d.svc.Revoke(ctx, customerID, tokenID)
	require.NoError(t, err)
}

func TestQrTokenService_Revoke_NotIssued(t *testing.T) {
	d := setupQrTokenService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	customerID := uuid.New()
	tokenID := uuid.New()

	d.repo.EXPECT().GetByID(ctx, tokenID).Return(&domain.QrToken{
		ID:         tokenID,
		CustomerID: customerID,
		State:      domain.QrStateConsumed,
	}, nil)
	d.repo.EXPECT().Revoke(ctx, tokenID).Return(false, nil)
	d.repo.EXPECT().GetByID(ctx, tokenID).Return(&domain.QrToken{
		ID:         tokenID,
		CustomerID: customerID,
		State:      domain.QrStateConsumed,
	}, nil)

	err := d.svc.Revoke(ctx, customerID, tokenID)
	assertAppError(t, err, "INT_001")
}

func TestQrTokenService_Revoke_Forbidden(t *testing.T) {
	d := setupQrTokenService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tokenID := uuid.New()

	d.repo.EXPECT().GetByID(ctx, tokenID).Return(&domain.QrToken{
		ID:         tokenID,
		CustomerID: uuid.New(),
		State:      domain.QrStateIssued,
	}, nil)

	err := d.svc.Revoke(ctx, uuid.New(), tokenID)
	assertAppError(t, err, "AUTH_002")
}

func TestQrTokenService_SweepExpired(t *testing.T) {
	d := setupQrTokenService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.repo.EXPECT().SweepExpired(ctx, gomock.Any()).Return(int64(3), nil)

	count, err := d.svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
