package service

import (
	"context"
	"testing"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/internal/core/ports/mocks"
	"prepaid-point-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ledgerTestDeps struct {
	svc        *LedgerServiceImpl
	walletRepo *mocks.MockWalletRepository
	lotRepo    *mocks.MockLotRepository
	txRepo     *mocks.MockTransactionRepository
	transactor *mocks.MockDBTransactor
	publisher  *mocks.MockEventPublisher
	ctrl       *gomock.Controller
}

func setupLedgerService(t *testing.T) *ledgerTestDeps {
	ctrl := gomock.NewController(t)
	d := &ledgerTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		lotRepo:    mocks.NewMockLotRepository(ctrl),
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		publisher:  mocks.NewMockEventPublisher(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewLedgerService(d.walletRepo, d.lotRepo, d.txRepo, d.transactor, d.publisher, zerolog.Nop())
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

// ==================== Charge Tests ====================

func TestLedgerService_Charge_Success(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	storeID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, walletID, storeID).Return(int64(0), nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.lotRepo.EXPECT().CreateLot(ctx, tx, gomock.Any()).Return(nil)
	d.lotRepo.EXPECT().CreateMove(ctx, tx, gomock.Any()).Return(nil)
	d.walletRepo.EXPECT().SetBalance(ctx, tx, walletID, storeID, int64(3000)).Return(nil)

	result, err := d.svc.Charge(ctx, ports.ChargeRequest{
		WalletID: walletID,
		StoreID:  storeID,
		Amount:   3000,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.TransactionTypeCharge, result.Transaction.Type)
	assert.Equal(t, int64(3000), result.Lot.InitialAmount)
	assert.Equal(t, int64(3000), result.Lot.RemainingAmount)
	assert.Equal(t, int64(3000), result.Balance)
}

func TestLedgerService_Charge_BonusInflatesLot(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	storeID := uuid.New()
	tx := &mockTx{}

	var move *domain.WalletLotMove
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, walletID, storeID).Return(int64(500), nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.lotRepo.EXPECT().CreateLot(ctx, tx, gomock.Any()).Return(nil)
	d.lotRepo.EXPECT().CreateMove(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, m *domain.WalletLotMove) error {
			move = m
			return nil
		})
	d.walletRepo.EXPECT().SetBalance(ctx, tx, walletID, storeID, int64(1600)).Return(nil)

	result, err := d.svc.Charge(ctx, ports.ChargeRequest{
		WalletID:     walletID,
		StoreID:      storeID,
		Amount:       1000,
		BonusPercent: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	// The customer pays 1000 but is credited 1100; the charge row keeps the
	// paid amount while the lot, its move, and the balance carry the credit.
	assert.Equal(t, int64(1000), result.Transaction.Amount)
	assert.Equal(t, int64(1100), result.Lot.InitialAmount)
	assert.Equal(t, int64(1100), result.Lot.RemainingAmount)
	require.NotNil(t, move)
	assert.Equal(t, int64(1100), move.Delta)
	assert.Equal(t, int64(1600), result.Balance)
}

func TestLedgerService_Charge_InvalidAmount(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	result, err := d.svc.Charge(context.Background(), ports.ChargeRequest{
		WalletID: uuid.New(),
		StoreID:  uuid.New(),
		Amount:   0,
	})
	assert.Nil(t, result)
	assertAppError(t, err, "LED_002")
}

// ==================== UseLot Tests ====================

func TestLedgerService_UseLot_ConsumesOldestFirst(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	storeID := uuid.New()
	tx := &mockTx{}

	lot1 := domain.WalletStoreLot{ID: uuid.New(), WalletID: walletID, StoreID: storeID, InitialAmount: 3000, RemainingAmount: 3000}
	lot2 := domain.WalletStoreLot{ID: uuid.New(), WalletID: walletID, StoreID: storeID, InitialAmount: 2000, RemainingAmount: 2000}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, walletID, storeID).Return(int64(5000), nil)
	d.lotRepo.EXPECT().ListOpenLotsForUpdate(ctx, tx, walletID, storeID, gomock.Any()).
		Return([]domain.WalletStoreLot{lot1, lot2}, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	// Oldest lot drains fully, second covers the rest.
	d.lotRepo.EXPECT().UpdateRemaining(ctx, tx, lot1.ID, int64(0)).Return(nil)
	d.lotRepo.EXPECT().CreateMove(ctx, tx, gomock.Any()).Return(nil)
	d.lotRepo.EXPECT().UpdateRemaining(ctx, tx, lot2.ID, int64(1000)).Return(nil)
	d.lotRepo.EXPECT().CreateMove(ctx, tx, gomock.Any()).Return(nil)
	d.walletRepo.EXPECT().SetBalance(ctx, tx, walletID, storeID, int64(1000)).Return(nil)

	result, err := d.svc.UseLot(ctx, ports.UseRequest{WalletID: walletID, StoreID: storeID, Amount: 4000})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.TransactionTypeUse, result.Transaction.Type)
	assert.Equal(t, int64(1000), result.Balance)
	require.Len(t, result.Moves, 2)
	assert.Equal(t, int64(-3000), result.Moves[0].Delta)
	assert.Equal(t, lot1.ID, result.Moves[0].LotID)
	assert.Equal(t, int64(-1000), result.Moves[1].Delta)
	assert.Equal(t, lot2.ID, result.Moves[1].LotID)
}

func TestLedgerService_UseLot_InsufficientBalance(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	storeID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, walletID, storeID).Return(int64(1000), nil)

	result, err := d.svc.UseLot(ctx, ports.UseRequest{WalletID: walletID, StoreID: storeID, Amount: 4000})
	assert.Nil(t, result)
	assertAppError(t, err, "LED_001")
}

func TestLedgerService_UseLot_ExpiredLotsNotSpendable(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	storeID := uuid.New()
	tx := &mockTx{}

	// Projection says 4000, but expired lots leave only 3000 open.
	openLot := domain.WalletStoreLot{ID: uuid.New(), RemainingAmount: 3000}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, walletID, storeID).Return(int64(4000), nil)
	d.lotRepo.EXPECT().ListOpenLotsForUpdate(ctx, tx, walletID, storeID, gomock.Any()).
		Return([]domain.WalletStoreLot{openLot}, nil)

	result, err := d.svc.UseLot(ctx, ports.UseRequest{WalletID: walletID, StoreID: storeID, Amount: 4000})
	assert.Nil(t, result)
	assertAppError(t, err, "LED_001")
}

// ==================== CancelUse Tests ====================

func TestLedgerService_CancelUse_RestoresExactLots(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	storeID := uuid.New()
	tx := &mockTx{}

	orig := domain.NewTransaction(domain.TransactionTypeUse, walletID, storeID, 4000)
	lot1ID := uuid.New()
	lot2ID := uuid.New()
	moves := []domain.WalletLotMove{
		{ID: uuid.New(), TransactionID: orig.ID, LotID: lot1ID, Delta: -3000},
		{ID: uuid.New(), TransactionID: orig.ID, LotID: lot2ID, Delta: -1000},
	}

	d.txRepo.EXPECT().GetByUniqueNo(ctx, orig.UniqueNo).Return(orig, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, walletID, storeID).Return(int64(1000), nil)
	d.txRepo.EXPECT().ReversalExists(ctx, tx, orig.ID).Return(false, nil)
	d.lotRepo.EXPECT().ListMovesByTransaction(ctx, tx, orig.ID).Return(moves, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.lotRepo.EXPECT().GetLotForUpdate(ctx, tx, lot1ID).
		Return(&domain.WalletStoreLot{ID: lot1ID, RemainingAmount: 0}, nil)
	d.lotRepo.EXPECT().UpdateRemaining(ctx, tx, lot1ID, int64(3000)).Return(nil)
	d.lotRepo.EXPECT().CreateMove(ctx, tx, gomock.Any()).Return(nil)
	d.lotRepo.EXPECT().GetLotForUpdate(ctx, tx, lot2ID).
		Return(&domain.WalletStoreLot{ID: lot2ID, RemainingAmount: 1000}, nil)
	d.lotRepo.EXPECT().UpdateRemaining(ctx, tx, lot2ID, int64(2000)).Return(nil)
	d.lotRepo.EXPECT().CreateMove(ctx, tx, gomock.Any()).Return(nil)
	d.walletRepo.EXPECT().SetBalance(ctx, tx, walletID, storeID, int64(5000)).Return(nil)
	d.publisher.EXPECT().PublishCancel(ctx, gomock.Any()).Return(nil)

	cancelTx, err := d.svc.CancelUse(ctx, ports.CancelRequest{WalletID: walletID, UniqueNo: orig.UniqueNo})
	require.NoError(t, err)
	require.NotNil(t, cancelTx)
	assert.Equal(t, domain.TransactionTypeCancelUse, cancelTx.Type)
	require.NotNil(t, cancelTx.ReversesTransactionID)
	assert.Equal(t, orig.ID, *cancelTx.ReversesTransactionID)
}

func TestLedgerService_CancelUse_AlreadyCanceled(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	orig := domain.NewTransaction(domain.TransactionTypeUse, walletID, uuid.New(), 500)

	d.txRepo.EXPECT().GetByUniqueNo(ctx, orig.UniqueNo).Return(orig, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, orig.WalletID, orig.StoreID).Return(int64(500), nil)
	d.txRepo.EXPECT().ReversalExists(ctx, tx, orig.ID).Return(true, nil)

	cancelTx, err := d.svc.CancelUse(ctx, ports.CancelRequest{WalletID: walletID, UniqueNo: orig.UniqueNo})
	assert.Nil(t, cancelTx)
	assertAppError(t, err, "LED_004")
}

func TestLedgerService_CancelUse_WrongWallet(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	orig := domain.NewTransaction(domain.TransactionTypeUse, uuid.New(), uuid.New(), 500)

	d.txRepo.EXPECT().GetByUniqueNo(ctx, orig.UniqueNo).Return(orig, nil)

	cancelTx, err := d.svc.CancelUse(ctx, ports.CancelRequest{WalletID: uuid.New(), UniqueNo: orig.UniqueNo})
	assert.Nil(t, cancelTx)
	assertAppError(t, err, "AUTH_002")
}

func TestLedgerService_CancelUse_NotFound(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.txRepo.EXPECT().GetByUniqueNo(ctx, "USE-missing").Return(nil, nil)

	cancelTx, err := d.svc.CancelUse(ctx, ports.CancelRequest{WalletID: uuid.New(), UniqueNo: "USE-missing"})
	assert.Nil(t, cancelTx)
	assertAppError(t, err, "LED_005")
}

// ==================== CancelCharge Tests ====================

func TestLedgerService_CancelCharge_UntouchedLot(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	storeID := uuid.New()
	tx := &mockTx{}

	orig := domain.NewTransaction(domain.TransactionTypeCharge, walletID, storeID, 1000)
	lot := &domain.WalletStoreLot{ID: uuid.New(), ChargeTransactionID: orig.ID, InitialAmount: 1000, RemainingAmount: 1000}

	d.txRepo.EXPECT().GetByUniqueNo(ctx, orig.UniqueNo).Return(orig, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, walletID, storeID).Return(int64(1000), nil)
	d.txRepo.EXPECT().ReversalExists(ctx, tx, orig.ID).Return(false, nil)
	d.lotRepo.EXPECT().GetLotByChargeTxForUpdate(ctx, tx, orig.ID).Return(lot, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.lotRepo.EXPECT().UpdateRemaining(ctx, tx, lot.ID, int64(0)).Return(nil)
	d.lotRepo.EXPECT().CreateMove(ctx, tx, gomock.Any()).Return(nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, walletID, storeID).Return(int64(1000), nil)
	d.walletRepo.EXPECT().SetBalance(ctx, tx, walletID, storeID, int64(0)).Return(nil)

	cancelTx, err := d.svc.CancelCharge(ctx, ports.CancelRequest{WalletID: walletID, UniqueNo: orig.UniqueNo})
	require.NoError(t, err)
	require.NotNil(t, cancelTx)
	assert.Equal(t, domain.TransactionTypeCancelCharge, cancelTx.Type)
}

func TestLedgerService_CancelCharge_DrainedByTransferNotCancelable(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	storeID := uuid.New()
	tx := &mockTx{}

	orig := domain.NewTransaction(domain.TransactionTypeCharge, walletID, storeID, 1000)
	lot := &domain.WalletStoreLot{ID: uuid.New(), ChargeTransactionID: orig.ID, InitialAmount: 1000, RemainingAmount: 600}
	drainTx := domain.NewTransaction(domain.TransactionTypeTransferOut, walletID, storeID, 400)

	d.txRepo.EXPECT().GetByUniqueNo(ctx, orig.UniqueNo).Return(orig, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, walletID, storeID).Return(int64(600), nil)
	d.txRepo.EXPECT().ReversalExists(ctx, tx, orig.ID).Return(false, nil)
	d.lotRepo.EXPECT().GetLotByChargeTxForUpdate(ctx, tx, orig.ID).Return(lot, nil)
	d.lotRepo.EXPECT().ListMovesByLot(ctx, tx, lot.ID).Return([]domain.WalletLotMove{
		{ID: uuid.New(), TransactionID: drainTx.ID, LotID: lot.ID, Delta: -400},
	}, nil)
	d.txRepo.EXPECT().GetByID(ctx, drainTx.ID).Return(drainTx, nil)
	// Transfer drains cannot cascade; the lot stays short.
	d.lotRepo.EXPECT().GetLotForUpdate(ctx, tx, lot.ID).Return(lot, nil)

	cancelTx, err := d.svc.CancelCharge(ctx, ports.CancelRequest{WalletID: walletID, UniqueNo: orig.UniqueNo})
	assert.Nil(t, cancelTx)
	assertAppError(t, err, "LED_006")
}

// ==================== Transfer Tests ====================

func TestLedgerService_Transfer_Success(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fromWallet := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	toWallet := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	storeID := uuid.New()
	tx := &mockTx{}

	lot := domain.WalletStoreLot{ID: uuid.New(), WalletID: fromWallet, StoreID: storeID, RemainingAmount: 5000}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	// Lower wallet id locks first.
	d.walletRepo.EXPECT().LockBalance(ctx, tx, fromWallet, storeID).Return(int64(5000), nil)
	d.walletRepo.EXPECT().LockBalance(ctx, tx, toWallet, storeID).Return(int64(0), nil)
	d.lotRepo.EXPECT().ListOpenLotsForUpdate(ctx, tx, fromWallet, storeID, gomock.Any()).
		Return([]domain.WalletStoreLot{lot}, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil).Times(2)
	d.lotRepo.EXPECT().UpdateRemaining(ctx, tx, lot.ID, int64(3000)).Return(nil)
	d.lotRepo.EXPECT().CreateMove(ctx, tx, gomock.Any()).Return(nil).Times(2)
	d.lotRepo.EXPECT().CreateLot(ctx, tx, gomock.Any()).Return(nil)
	d.walletRepo.EXPECT().SetBalance(ctx, tx, fromWallet, storeID, int64(3000)).Return(nil)
	d.walletRepo.EXPECT().SetBalance(ctx, tx, toWallet, storeID, int64(2000)).Return(nil)

	result, err := d.svc.Transfer(ctx, ports.TransferRequest{
		FromWalletID: fromWallet,
		ToWalletID:   toWallet,
		FromStoreID:  storeID,
		ToStoreID:    storeID,
		Amount:       2000,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.TransactionTypeTransferOut, result.Out.Type)
	assert.Equal(t, domain.TransactionTypeTransferIn, result.In.Type)
	require.NotNil(t, result.In.LinkedTransactionID)
	assert.Equal(t, result.Out.ID, *result.In.LinkedTransactionID)
	assert.Equal(t, int64(3000), result.FromBalance)
	assert.Equal(t, int64(2000), result.ToBalance)
}

func TestLedgerService_Transfer_StoreMismatch(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	tx := &mockTx{}
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	result, err := d.svc.Transfer(context.Background(), ports.TransferRequest{
		FromWalletID: uuid.New(),
		ToWalletID:   uuid.New(),
		FromStoreID:  uuid.New(),
		ToStoreID:    uuid.New(),
		Amount:       100,
	})
	assert.Nil(t, result)
	assertAppError(t, err, "LED_003")
}

func TestLedgerService_Transfer_SameWallet(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	tx := &mockTx{}
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	walletID := uuid.New()
	storeID := uuid.New()
	result, err := d.svc.Transfer(context.Background(), ports.TransferRequest{
		FromWalletID: walletID,
		ToWalletID:   walletID,
		FromStoreID:  storeID,
		ToStoreID:    storeID,
		Amount:       100,
	})
	assert.Nil(t, result)
	assertAppError(t, err, "VAL_001")
}

// ==================== Helper ====================

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}
