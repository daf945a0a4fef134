package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/internal/core/ports/mocks"
	"prepaid-point-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type groupTestDeps struct {
	svc        *GroupServiceImpl
	groupRepo  *mocks.MockGroupRepository
	walletRepo *mocks.MockWalletRepository
	txRepo     *mocks.MockTransactionRepository
	ledger     *mocks.MockLedgerService
	idem       *mocks.MockIdempotencyService
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupGroupService(t *testing.T) *groupTestDeps {
	ctrl := gomock.NewController(t)
	d := &groupTestDeps{
		groupRepo:  mocks.NewMockGroupRepository(ctrl),
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		ledger:     mocks.NewMockLedgerService(ctrl),
		idem:       mocks.NewMockIdempotencyService(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewGroupService(
		d.groupRepo, d.walletRepo, d.txRepo, d.ledger,
		d.idem, d.transactor, zerolog.Nop(),
	)
	return d
}

func TestGroupService_CreateGroup_Success(t *testing.T) {
	d := setupGroupService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	creatorWallet := &domain.Wallet{ID: uuid.New(), OwnerCustomerID: &creatorID}

	d.walletRepo.EXPECT().GetByCustomerID(ctx, creatorID).Return(creatorWallet, nil)
	d.groupRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.walletRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.groupRepo.EXPECT().AddMember(ctx, gomock.Any()).Return(nil)

	group, wallet, err := d.svc.CreateGroup(ctx, ports.CreateGroupRequest{Name: "trip fund", CreatorID: creatorID})
	require.NoError(t, err)
	require.NotNil(t, group)
	require.NotNil(t, wallet)
	assert.Equal(t, domain.GroupStatusActive, group.Status)
	assert.Equal(t, domain.WalletKindGroup, wallet.Kind)
	require.NotNil(t, wallet.OwnerGroupID)
	assert.Equal(t, group.ID, *wallet.OwnerGroupID)
}

func TestGroupService_CreateGroup_NoName(t *testing.T) {
	d := setupGroupService(t)
	defer d.ctrl.Finish()

	group, wallet, err := d.svc.CreateGroup(context.Background(), ports.CreateGroupRequest{CreatorID: uuid.New()})
	assert.Nil(t, group)
	assert.Nil(t, wallet)
	assertAppError(t, err, "VAL_001")
}

// ==================== PointShare Tests ====================

func pointShareFixture(d *groupTestDeps, ctx context.Context, req ports.PointShareRequest, memberWallet, groupWallet *domain.Wallet) {
	d.groupRepo.EXPECT().GetByID(ctx, req.GroupID).Return(&domain.Group{
		ID:     req.GroupID,
		Status: domain.GroupStatusActive,
	}, nil)
	d.groupRepo.EXPECT().IsMember(ctx, req.GroupID, req.CustomerID).Return(true, nil)
	d.walletRepo.EXPECT().GetByCustomerID(ctx, req.CustomerID).Return(memberWallet, nil)
	d.walletRepo.EXPECT().GetByGroupID(ctx, req.GroupID).Return(groupWallet, nil)
}

func TestGroupService_PointShare_FirstDelivery(t *testing.T) {
	d := setupGroupService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := ports.PointShareRequest{
		GroupID:    uuid.New(),
		CustomerID: uuid.New(),
		StoreID:    uuid.New(),
		Amount:     2000,
		Scope:      testScope(),
	}
	memberWallet := &domain.Wallet{ID: uuid.New()}
	groupWallet := &domain.Wallet{ID: uuid.New(), Kind: domain.WalletKindGroup}
	transfer := &ports.TransferResult{
		Out: domain.NewTransaction(domain.TransactionTypeTransferOut, memberWallet.ID, req.StoreID, req.Amount),
		In:  domain.NewTransaction(domain.TransactionTypeTransferIn, groupWallet.ID, req.StoreID, req.Amount),
	}

	pointShareFixture(d, ctx, req, memberWallet, groupWallet)
	d.idem.EXPECT().Begin(ctx, req.Scope, gomock.Any()).Return(&ports.BeginResult{State: ports.BeginStateClaimed}, nil)
	d.ledger.EXPECT().Transfer(ctx, ports.TransferRequest{
		FromWalletID: memberWallet.ID,
		ToWalletID:   groupWallet.ID,
		FromStoreID:  req.StoreID,
		ToStoreID:    req.StoreID,
		Amount:       req.Amount,
	}).Return(transfer, nil)
	d.idem.EXPECT().Complete(ctx, req.Scope, http.StatusOK, gomock.Any()).Return(nil)

	result, err := d.svc.PointShare(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Replayed)
	assert.False(t, result.InProgress)
	assert.Equal(t, transfer, result.Transfer)
}

func TestGroupService_PointShare_DuplicateReplays(t *testing.T) {
	d := setupGroupService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := ports.PointShareRequest{
		GroupID:    uuid.New(),
		CustomerID: uuid.New(),
		StoreID:    uuid.New(),
		Amount:     2000,
		Scope:      testScope(),
	}
	memberWallet := &domain.Wallet{ID: uuid.New()}
	groupWallet := &domain.Wallet{ID: uuid.New()}

	pointShareFixture(d, ctx, req, memberWallet, groupWallet)
	d.idem.EXPECT().Begin(ctx, req.Scope, gomock.Any()).Return(&ports.BeginResult{
		State:          ports.BeginStateReplay,
		ResponseStatus: http.StatusOK,
		ResponseBody:   []byte(`{"replay":true}`),
	}, nil)

	result, err := d.svc.PointShare(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.Replayed)
	assert.Equal(t, http.StatusOK, result.ResponseStatus)
	assert.Nil(t, result.Transfer)
}

func TestGroupService_PointShare_TransferFailureReleasesScope(t *testing.T) {
	d := setupGroupService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := ports.PointShareRequest{
		GroupID:    uuid.New(),
		CustomerID: uuid.New(),
		StoreID:    uuid.New(),
		Amount:     2000,
		Scope:      testScope(),
	}
	memberWallet := &domain.Wallet{ID: uuid.New()}
	groupWallet := &domain.Wallet{ID: uuid.New()}

	pointShareFixture(d, ctx, req, memberWallet, groupWallet)
	d.idem.EXPECT().Begin(ctx, req.Scope, gomock.Any()).Return(&ports.BeginResult{State: ports.BeginStateClaimed}, nil)
	d.ledger.EXPECT().Transfer(ctx, gomock.Any()).Return(nil, apperror.ErrInsufficientFunds())
	d.idem.EXPECT().Abandon(ctx, req.Scope).Return(nil)

	result, err := d.svc.PointShare(ctx, req)
	assert.Nil(t, result)
	assertAppError(t, err, "LED_001")
}

func TestGroupService_PointShare_NotMember(t *testing.T) {
	d := setupGroupService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := ports.PointShareRequest{
		GroupID:    uuid.New(),
		CustomerID: uuid.New(),
		StoreID:    uuid.New(),
		Amount:     2000,
		Scope:      testScope(),
	}

	d.groupRepo.EXPECT().GetByID(ctx, req.GroupID).Return(&domain.Group{
		ID:     req.GroupID,
		Status: domain.GroupStatusActive,
	}, nil)
	d.groupRepo.EXPECT().IsMember(ctx, req.GroupID, req.CustomerID).Return(false, nil)

	result, err := d.svc.PointShare(ctx, req)
	assert.Nil(t, result)
	assertAppError(t, err, "AUTH_002")
}

// ==================== DisbandGroup Tests ====================

func TestGroupService_Disband_SplitsByContribution(t *testing.T) {
	d := setupGroupService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	groupID := uuid.New()
	requesterID := uuid.New()
	storeID := uuid.New()
	tx := &mockTx{}

	groupWallet := &domain.Wallet{ID: uuid.New(), Kind: domain.WalletKindGroup}
	w1, w2, w3 := uuid.New(), uuid.New(), uuid.New()
	members := []domain.GroupMember{
		{GroupID: groupID, CustomerID: requesterID, WalletID: w1},
		{GroupID: groupID, CustomerID: uuid.New(), WalletID: w2},
		{GroupID: groupID, CustomerID: uuid.New(), WalletID: w3},
	}

	d.groupRepo.EXPECT().IsMember(ctx, groupID, requesterID).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.groupRepo.EXPECT().GetByIDForUpdate(ctx, tx, groupID).Return(&domain.Group{
		ID:     groupID,
		Status: domain.GroupStatusActive,
	}, nil)
	d.walletRepo.EXPECT().GetByGroupID(ctx, groupID).Return(groupWallet, nil)
	d.groupRepo.EXPECT().ListMembers(ctx, groupID).Return(members, nil)
	d.walletRepo.EXPECT().ListBalancesForUpdate(ctx, tx, groupWallet.ID).Return([]domain.WalletStoreBalance{
		{WalletID: groupWallet.ID, StoreID: storeID, Balance: 100},
	}, nil)
	d.txRepo.EXPECT().NetContributions(ctx, tx, groupWallet.ID, storeID).Return([]domain.MemberContribution{
		{WalletID: w1, Net: 50},
		{WalletID: w2, Net: 30},
		{WalletID: w3, Net: 20},
	}, nil)
	for _, refund := range []struct {
		wallet uuid.UUID
		amount int64
	}{{w1, 50}, {w2, 30}, {w3, 20}} {
		d.ledger.EXPECT().TransferTx(ctx, tx, ports.TransferRequest{
			FromWalletID: groupWallet.ID,
			ToWalletID:   refund.wallet,
			FromStoreID:  storeID,
			ToStoreID:    storeID,
			Amount:       refund.amount,
		}).Return(&ports.TransferResult{}, nil)
	}
	d.groupRepo.EXPECT().MarkDisbanded(ctx, tx, groupID).Return(nil)
	d.walletRepo.EXPECT().UpdateStatus(ctx, tx, groupWallet.ID, domain.WalletStatusClosed).Return(nil)

	result, err := d.svc.DisbandGroup(ctx, groupID, requesterID)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Refunds, 3)
	assert.Equal(t, int64(50), result.Refunds[0].Amount)
	assert.Equal(t, int64(30), result.Refunds[1].Amount)
	assert.Equal(t, int64(20), result.Refunds[2].Amount)
}

func TestGroupService_Disband_NotMember(t *testing.T) {
	d := setupGroupService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	groupID := uuid.New()

	d.groupRepo.EXPECT().IsMember(ctx, groupID, gomock.Any()).Return(false, nil)

	result, err := d.svc.DisbandGroup(ctx, groupID, uuid.New())
	assert.Nil(t, result)
	assertAppError(t, err, "AUTH_002")
}

func TestGroupService_Disband_AlreadyDisbanded(t *testing.T) {
	d := setupGroupService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	groupID := uuid.New()
	requesterID := uuid.New()
	tx := &mockTx{}

	d.groupRepo.EXPECT().IsMember(ctx, groupID, requesterID).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.groupRepo.EXPECT().GetByIDForUpdate(ctx, tx, groupID).Return(&domain.Group{
		ID:        groupID,
		Status:    domain.GroupStatusDisbanded,
		UpdatedAt: time.Now(),
	}, nil)

	result, err := d.svc.DisbandGroup(ctx, groupID, requesterID)
	assert.Nil(t, result)
	assertAppError(t, err, "VAL_001")
}
