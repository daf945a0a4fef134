package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// GroupServiceImpl implements ports.GroupService. A group owns one shared
// GROUP wallet; members pool funds in via transfers and get them back pro
// rata by net contribution when the group disbands.
type GroupServiceImpl struct {
	groupRepo  ports.GroupRepository
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	ledger     ports.LedgerService
	idem       ports.IdempotencyService
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewGroupService creates a new GroupServiceImpl.
func NewGroupService(
	groupRepo ports.GroupRepository,
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	ledger ports.LedgerService,
	idem ports.IdempotencyService,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *GroupServiceImpl {
	return &GroupServiceImpl{
		groupRepo:  groupRepo,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		ledger:     ledger,
		idem:       idem,
		transactor: transactor,
		log:        log,
	}
}

// CreateGroup creates the group, its shared wallet and the creator's
// membership.
func (s *GroupServiceImpl) CreateGroup(ctx context.Context, req ports.CreateGroupRequest) (*domain.Group, *domain.Wallet, error) {
	if req.Name == "" {
		return nil, nil, apperror.Validation("group name is required")
	}

	creatorWallet, err := s.walletRepo.GetByCustomerID(ctx, req.CreatorID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("load creator wallet: %w", err))
	}
	if creatorWallet == nil {
		return nil, nil, apperror.ErrNotFound("wallet")
	}

	group := domain.NewGroup(req.Name)
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("create group: %w", err))
	}

	groupWallet := domain.NewGroupWallet(group.ID)
	if err := s.walletRepo.Create(ctx, groupWallet); err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("create group wallet: %w", err))
	}

	member := &domain.GroupMember{
		GroupID:    group.ID,
		CustomerID: req.CreatorID,
		WalletID:   creatorWallet.ID,
		JoinedAt:   group.CreatedAt,
	}
	if err := s.groupRepo.AddMember(ctx, member); err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("add creator member: %w", err))
	}

	s.log.Info().
		Str("group_id", group.ID.String()).
		Str("wallet_id", groupWallet.ID.String()).
		Msg("group created")

	return group, groupWallet, nil
}

// GetGroup returns a group with its membership.
func (s *GroupServiceImpl) GetGroup(ctx context.Context, groupID uuid.UUID) (*domain.Group, []domain.GroupMember, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("get group: %w", err))
	}
	if group == nil {
		return nil, nil, apperror.ErrNotFound("group")
	}
	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("list members: %w", err))
	}
	return group, members, nil
}

// JoinGroup adds a customer to an active group. Joining twice is a no-op.
func (s *GroupServiceImpl) JoinGroup(ctx context.Context, groupID, customerID uuid.UUID) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get group: %w", err))
	}
	if group == nil {
		return apperror.ErrNotFound("group")
	}
	if !group.IsActive() {
		return apperror.Validation("group is disbanded")
	}

	wallet, err := s.walletRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load member wallet: %w", err))
	}
	if wallet == nil {
		return apperror.ErrNotFound("wallet")
	}

	member := &domain.GroupMember{
		GroupID:    groupID,
		CustomerID: customerID,
		WalletID:   wallet.ID,
		JoinedAt:   group.UpdatedAt,
	}
	if err := s.groupRepo.AddMember(ctx, member); err != nil {
		return apperror.InternalError(fmt.Errorf("add member: %w", err))
	}
	return nil
}

// pointShareBody fingerprints and serializes a point share for the
// idempotency guard.
type pointShareBody struct {
	GroupID    uuid.UUID `json:"group_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	StoreID    uuid.UUID `json:"store_id"`
	Amount     int64     `json:"amount"`
}

// PointShare transfers value from a member's wallet into the group wallet,
// deduplicated end to end by the caller's idempotency scope.
func (s *GroupServiceImpl) PointShare(ctx context.Context, req ports.PointShareRequest) (*ports.PointShareResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	group, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get group: %w", err))
	}
	if group == nil {
		return nil, apperror.ErrNotFound("group")
	}
	if !group.IsActive() {
		return nil, apperror.Validation("group is disbanded")
	}

	isMember, err := s.groupRepo.IsMember(ctx, req.GroupID, req.CustomerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check membership: %w", err))
	}
	if !isMember {
		return nil, apperror.ErrForbidden()
	}

	memberWallet, err := s.walletRepo.GetByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load member wallet: %w", err))
	}
	if memberWallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	groupWallet, err := s.walletRepo.GetByGroupID(ctx, req.GroupID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load group wallet: %w", err))
	}
	if groupWallet == nil {
		return nil, apperror.ErrNotFound("group wallet")
	}

	fingerprint, err := json.Marshal(pointShareBody{
		GroupID:    req.GroupID,
		CustomerID: req.CustomerID,
		StoreID:    req.StoreID,
		Amount:     req.Amount,
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fingerprint request: %w", err))
	}
	bodyHash := domain.HashRequestBody(fingerprint)

	begin, err := s.idem.Begin(ctx, req.Scope, bodyHash)
	if err != nil {
		return nil, err
	}
	switch begin.State {
	case ports.BeginStateReplay:
		return &ports.PointShareResult{
			Replayed:       true,
			ResponseStatus: begin.ResponseStatus,
			ResponseBody:   begin.ResponseBody,
		}, nil
	case ports.BeginStateInProgress:
		return &ports.PointShareResult{InProgress: true}, nil
	}

	transfer, err := s.ledger.Transfer(ctx, ports.TransferRequest{
		FromWalletID: memberWallet.ID,
		ToWalletID:   groupWallet.ID,
		FromStoreID:  req.StoreID,
		ToStoreID:    req.StoreID,
		Amount:       req.Amount,
	})
	if err != nil {
		if abandonErr := s.idem.Abandon(ctx, req.Scope); abandonErr != nil {
			s.log.Warn().Err(abandonErr).Str("scope", req.Scope.CacheKey()).Msg("failed to release idempotency scope")
		}
		return nil, err
	}

	responseBody, err := json.Marshal(transfer)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal transfer result: %w", err))
	}
	if err := s.idem.Complete(ctx, req.Scope, http.StatusOK, responseBody); err != nil {
		s.log.Warn().Err(err).Str("scope", req.Scope.CacheKey()).Msg("failed to persist canonical point share response")
	}

	s.log.Info().
		Str("group_id", req.GroupID.String()).
		Str("out_unique_no", transfer.Out.UniqueNo).
		Int64("amount", req.Amount).
		Msg("point share pooled")

	return &ports.PointShareResult{Transfer: transfer}, nil
}

// DisbandGroup refunds every store balance of the group wallet to members
// pro rata by net contribution and closes group and wallet, all in one
// database transaction. Either every refund lands or none do.
func (s *GroupServiceImpl) DisbandGroup(ctx context.Context, groupID, requesterID uuid.UUID) (*ports.DisbandResult, error) {
	isMember, err := s.groupRepo.IsMember(ctx, groupID, requesterID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check membership: %w", err))
	}
	if !isMember {
		return nil, apperror.ErrForbidden()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	group, err := s.groupRepo.GetByIDForUpdate(ctx, dbTx, groupID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock group: %w", err))
	}
	if group == nil {
		return nil, apperror.ErrNotFound("group")
	}
	if !group.IsActive() {
		return nil, apperror.Validation("group is already disbanded")
	}

	groupWallet, err := s.walletRepo.GetByGroupID(ctx, groupID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load group wallet: %w", err))
	}
	if groupWallet == nil {
		return nil, apperror.ErrNotFound("group wallet")
	}
	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list members: %w", err))
	}

	balances, err := s.walletRepo.ListBalancesForUpdate(ctx, dbTx, groupWallet.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock group balances: %w", err))
	}

	var refunds []ports.MemberRefund
	for _, balance := range balances {
		if balance.Balance <= 0 {
			continue
		}
		storeRefunds, err := s.refundStoreBalance(ctx, dbTx, groupWallet.ID, balance, members)
		if err != nil {
			return nil, err
		}
		refunds = append(refunds, storeRefunds...)
	}

	if err := s.groupRepo.MarkDisbanded(ctx, dbTx, groupID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark group disbanded: %w", err))
	}
	if err := s.walletRepo.UpdateStatus(ctx, dbTx, groupWallet.ID, domain.WalletStatusClosed); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("close group wallet: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("group_id", groupID.String()).
		Int("refunds", len(refunds)).
		Msg("group disbanded")

	return &ports.DisbandResult{GroupID: groupID, Refunds: refunds}, nil
}

// refundStoreBalance splits one store balance across members by net
// contribution and transfers each positive share back.
func (s *GroupServiceImpl) refundStoreBalance(ctx context.Context, dbTx pgx.Tx, groupWalletID uuid.UUID, balance domain.WalletStoreBalance, members []domain.GroupMember) ([]ports.MemberRefund, error) {
	contributions, err := s.txRepo.NetContributions(ctx, dbTx, groupWalletID, balance.StoreID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("net contributions: %w", err))
	}

	netByWallet := make(map[uuid.UUID]int64, len(contributions))
	for _, c := range contributions {
		netByWallet[c.WalletID] = c.Net
	}

	memberContribs := make([]domain.MemberContribution, len(members))
	for i, m := range members {
		memberContribs[i] = domain.MemberContribution{
			WalletID: m.WalletID,
			Net:      netByWallet[m.WalletID],
		}
	}

	shares := domain.SplitByContribution(balance.Balance, memberContribs)

	var refunds []ports.MemberRefund
	for i, share := range shares {
		if share <= 0 {
			continue
		}
		if _, err := s.ledger.TransferTx(ctx, dbTx, ports.TransferRequest{
			FromWalletID: groupWalletID,
			ToWalletID:   memberContribs[i].WalletID,
			FromStoreID:  balance.StoreID,
			ToStoreID:    balance.StoreID,
			Amount:       share,
		}); err != nil {
			return nil, err
		}
		refunds = append(refunds, ports.MemberRefund{
			WalletID: memberContribs[i].WalletID,
			StoreID:  balance.StoreID,
			Amount:   share,
		})
	}
	return refunds, nil
}
