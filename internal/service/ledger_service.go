package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService. Every mutation follows
// the same shape: lock the (wallet, store) balance row, mutate lots and the
// append-only journals, then write the balance projection, all in one
// database transaction.
type LedgerServiceImpl struct {
	walletRepo ports.WalletRepository
	lotRepo    ports.LotRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	publisher  ports.EventPublisher
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	lotRepo ports.LotRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo: walletRepo,
		lotRepo:    lotRepo,
		txRepo:     txRepo,
		transactor: transactor,
		publisher:  publisher,
		log:        log,
	}
}

// Charge loads value into a wallet at a store: one CHARGE row, one full lot
// sized amount plus bonus, one positive lot move at the credited size. With
// the charge move included, a lot's remaining amount always equals the sum
// of its move deltas.
func (s *LedgerServiceImpl) Charge(ctx context.Context, req ports.ChargeRequest) (*ports.ChargeResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.BonusPercent < 0 {
		return nil, apperror.Validation("bonus_percent must not be negative")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	balance, err := s.walletRepo.LockBalance(ctx, dbTx, req.WalletID, req.StoreID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock balance: %w", err))
	}

	chargeTx := domain.NewTransaction(domain.TransactionTypeCharge, req.WalletID, req.StoreID, req.Amount)
	if err := s.txRepo.Create(ctx, dbTx, chargeTx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create charge transaction: %w", err))
	}

	lot := domain.NewLot(chargeTx, req.BonusPercent, req.ExpiresAt)
	if err := s.lotRepo.CreateLot(ctx, dbTx, lot); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create lot: %w", err))
	}
	move := domain.NewLotMove(chargeTx.ID, lot.ID, lot.InitialAmount, chargeTx.CreatedAt)
	if err := s.lotRepo.CreateMove(ctx, dbTx, move); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create charge move: %w", err))
	}

	newBalance := balance + lot.InitialAmount
	if err := s.walletRepo.SetBalance(ctx, dbTx, req.WalletID, req.StoreID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set balance: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("unique_no", chargeTx.UniqueNo).
		Str("wallet_id", req.WalletID.String()).
		Str("store_id", req.StoreID.String()).
		Int64("amount", req.Amount).
		Int64("credited", lot.InitialAmount).
		Int64("balance", newBalance).
		Msg("charge processed")

	return &ports.ChargeResult{Transaction: chargeTx, Lot: lot, Balance: newBalance}, nil
}

// UseLot spends value at a store, consuming lots oldest first.
func (s *LedgerServiceImpl) UseLot(ctx context.Context, req ports.UseRequest) (*ports.UseResult, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	result, err := s.UseLotTx(ctx, dbTx, req)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return result, nil
}

// UseLotTx runs the spend inside a caller-owned transaction so intent
// approval composes its status change with the ledger mutation atomically.
func (s *LedgerServiceImpl) UseLotTx(ctx context.Context, dbTx pgx.Tx, req ports.UseRequest) (*ports.UseResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	balance, err := s.walletRepo.LockBalance(ctx, dbTx, req.WalletID, req.StoreID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock balance: %w", err))
	}
	// The projection can only overstate the spendable total (expired lots),
	// so a failed fast check is authoritative.
	if balance < req.Amount {
		return nil, apperror.ErrInsufficientFunds()
	}

	now := time.Now().UTC()
	lots, err := s.lotRepo.ListOpenLotsForUpdate(ctx, dbTx, req.WalletID, req.StoreID, now)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list open lots: %w", err))
	}

	var available int64
	for _, lot := range lots {
		available += lot.RemainingAmount
	}
	if available < req.Amount {
		return nil, apperror.ErrInsufficientFunds()
	}

	useTx := domain.NewTransaction(domain.TransactionTypeUse, req.WalletID, req.StoreID, req.Amount)
	if err := s.txRepo.Create(ctx, dbTx, useTx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create use transaction: %w", err))
	}

	moves, err := s.consumeLots(ctx, dbTx, useTx.ID, lots, req.Amount, now)
	if err != nil {
		return nil, err
	}

	newBalance := balance - req.Amount
	if err := s.walletRepo.SetBalance(ctx, dbTx, req.WalletID, req.StoreID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set balance: %w", err))
	}

	s.log.Info().
		Str("unique_no", useTx.UniqueNo).
		Str("wallet_id", req.WalletID.String()).
		Int64("amount", req.Amount).
		Int("lots_touched", len(moves)).
		Msg("use processed")

	return &ports.UseResult{Transaction: useTx, Moves: moves, Balance: newBalance}, nil
}

// consumeLots drains the required amount from already-locked lots, oldest
// first, recording one negative move per touched lot.
func (s *LedgerServiceImpl) consumeLots(ctx context.Context, dbTx pgx.Tx, txID uuid.UUID, lots []domain.WalletStoreLot, amount int64, at time.Time) ([]domain.WalletLotMove, error) {
	remaining := amount
	var moves []domain.WalletLotMove
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		take := lot.RemainingAmount
		if take > remaining {
			take = remaining
		}
		if err := s.lotRepo.UpdateRemaining(ctx, dbTx, lot.ID, lot.RemainingAmount-take); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("drain lot: %w", err))
		}
		move := domain.NewLotMove(txID, lot.ID, -take, at)
		if err := s.lotRepo.CreateMove(ctx, dbTx, move); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create use move: %w", err))
		}
		moves = append(moves, *move)
		remaining -= take
	}
	if remaining != 0 {
		return nil, apperror.InternalError(fmt.Errorf("lot drain short by %d", remaining))
	}
	return moves, nil
}

// CancelUse reverses a USE transaction, restoring the exact deltas it
// recorded to the exact lots it drained, expired or not.
func (s *LedgerServiceImpl) CancelUse(ctx context.Context, req ports.CancelRequest) (*domain.Transaction, error) {
	orig, err := s.txRepo.GetByUniqueNo(ctx, req.UniqueNo)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find original tx: %w", err))
	}
	if orig == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	if orig.WalletID != req.WalletID {
		return nil, apperror.ErrForbidden()
	}
	if orig.Type != domain.TransactionTypeUse {
		return nil, apperror.Validation("transaction is not a use")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	cancelTx, err := s.cancelUseTx(ctx, dbTx, orig)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-commit, best effort.
	event := domain.CancelEvent{
		TransactionUniqueNo: cancelTx.UniqueNo,
		CanceledUniqueNo:    orig.UniqueNo,
		WalletID:            orig.WalletID,
		StoreID:             orig.StoreID,
		Amount:              orig.Amount,
		OccurredAt:          cancelTx.CreatedAt,
	}
	if err := s.publisher.PublishCancel(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("unique_no", cancelTx.UniqueNo).Msg("failed to publish cancel event")
	}

	s.log.Info().
		Str("unique_no", cancelTx.UniqueNo).
		Str("canceled", orig.UniqueNo).
		Int64("amount", orig.Amount).
		Msg("use canceled")

	return cancelTx, nil
}

// cancelUseTx reverses one USE transaction inside an open transaction. Also
// used when canceling a charge cascades to the uses that drained its lot.
func (s *LedgerServiceImpl) cancelUseTx(ctx context.Context, dbTx pgx.Tx, orig *domain.Transaction) (*domain.Transaction, error) {
	balance, err := s.walletRepo.LockBalance(ctx, dbTx, orig.WalletID, orig.StoreID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock balance: %w", err))
	}

	reversed, err := s.txRepo.ReversalExists(ctx, dbTx, orig.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check reversal: %w", err))
	}
	if reversed {
		return nil, apperror.ErrAlreadyCanceled()
	}

	moves, err := s.lotRepo.ListMovesByTransaction(ctx, dbTx, orig.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list original moves: %w", err))
	}

	cancelTx := domain.NewTransaction(domain.TransactionTypeCancelUse, orig.WalletID, orig.StoreID, orig.Amount)
	cancelTx.ReversesTransactionID = &orig.ID
	if err := s.txRepo.Create(ctx, dbTx, cancelTx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create cancel transaction: %w", err))
	}

	for _, move := range moves {
		if move.Delta >= 0 {
			continue
		}
		restore := -move.Delta
		lot, err := s.lotRepo.GetLotForUpdate(ctx, dbTx, move.LotID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lock lot: %w", err))
		}
		if lot == nil {
			return nil, apperror.InternalError(fmt.Errorf("lot missing for move %s", move.ID))
		}
		if err := s.lotRepo.UpdateRemaining(ctx, dbTx, lot.ID, lot.RemainingAmount+restore); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("restore lot: %w", err))
		}
		restoreMove := domain.NewLotMove(cancelTx.ID, lot.ID, restore, cancelTx.CreatedAt)
		if err := s.lotRepo.CreateMove(ctx, dbTx, restoreMove); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create restore move: %w", err))
		}
	}

	if err := s.walletRepo.SetBalance(ctx, dbTx, orig.WalletID, orig.StoreID, balance+orig.Amount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set balance: %w", err))
	}
	return cancelTx, nil
}

// CancelCharge reverses a CHARGE transaction. If the lot has been partially
// drained by uses, those uses are canceled first in the same transaction;
// drains the cascade cannot undo (transfers) abort the whole cancellation.
func (s *LedgerServiceImpl) CancelCharge(ctx context.Context, req ports.CancelRequest) (*domain.Transaction, error) {
	orig, err := s.txRepo.GetByUniqueNo(ctx, req.UniqueNo)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find original tx: %w", err))
	}
	if orig == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	if orig.WalletID != req.WalletID {
		return nil, apperror.ErrForbidden()
	}
	if orig.Type != domain.TransactionTypeCharge {
		return nil, apperror.Validation("transaction is not a charge")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if _, err := s.walletRepo.LockBalance(ctx, dbTx, orig.WalletID, orig.StoreID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock balance: %w", err))
	}

	reversed, err := s.txRepo.ReversalExists(ctx, dbTx, orig.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check reversal: %w", err))
	}
	if reversed {
		return nil, apperror.ErrAlreadyCanceled()
	}

	lot, err := s.lotRepo.GetLotByChargeTxForUpdate(ctx, dbTx, orig.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock lot: %w", err))
	}
	if lot == nil {
		return nil, apperror.ErrNotFound("lot")
	}

	if lot.RemainingAmount != lot.InitialAmount {
		if err := s.cancelDownstreamUses(ctx, dbTx, lot); err != nil {
			return nil, err
		}
		lot, err = s.lotRepo.GetLotForUpdate(ctx, dbTx, lot.ID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("reload lot: %w", err))
		}
		if lot.RemainingAmount != lot.InitialAmount {
			return nil, apperror.ErrChargeNotCancelable()
		}
	}

	cancelTx := domain.NewTransaction(domain.TransactionTypeCancelCharge, orig.WalletID, orig.StoreID, orig.Amount)
	cancelTx.ReversesTransactionID = &orig.ID
	if err := s.txRepo.Create(ctx, dbTx, cancelTx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create cancel transaction: %w", err))
	}

	if err := s.lotRepo.UpdateRemaining(ctx, dbTx, lot.ID, 0); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("zero lot: %w", err))
	}
	move := domain.NewLotMove(cancelTx.ID, lot.ID, -lot.InitialAmount, cancelTx.CreatedAt)
	if err := s.lotRepo.CreateMove(ctx, dbTx, move); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create cancel move: %w", err))
	}

	// Re-read: the cascade may have bumped the balance.
	balance, err := s.walletRepo.LockBalance(ctx, dbTx, orig.WalletID, orig.StoreID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("re-lock balance: %w", err))
	}
	if err := s.walletRepo.SetBalance(ctx, dbTx, orig.WalletID, orig.StoreID, balance-lot.InitialAmount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set balance: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("unique_no", cancelTx.UniqueNo).
		Str("canceled", orig.UniqueNo).
		Int64("amount", orig.Amount).
		Msg("charge canceled")

	return cancelTx, nil
}

// cancelDownstreamUses reverses every not-yet-canceled USE that drained the
// lot. Non-USE drains (transfers) are left alone; the caller re-checks the
// lot afterwards and aborts if value is still missing.
func (s *LedgerServiceImpl) cancelDownstreamUses(ctx context.Context, dbTx pgx.Tx, lot *domain.WalletStoreLot) error {
	moves, err := s.lotRepo.ListMovesByLot(ctx, dbTx, lot.ID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("list lot moves: %w", err))
	}

	seen := make(map[uuid.UUID]bool)
	for _, move := range moves {
		if move.Delta >= 0 || seen[move.TransactionID] {
			continue
		}
		seen[move.TransactionID] = true

		drainTx, err := s.txRepo.GetByID(ctx, move.TransactionID)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("load draining tx: %w", err))
		}
		if drainTx == nil || drainTx.Type != domain.TransactionTypeUse {
			continue
		}
		reversed, err := s.txRepo.ReversalExists(ctx, dbTx, drainTx.ID)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("check downstream reversal: %w", err))
		}
		if reversed {
			continue
		}
		if _, err := s.cancelUseTx(ctx, dbTx, drainTx); err != nil {
			return err
		}
		s.log.Info().
			Str("unique_no", drainTx.UniqueNo).
			Msg("downstream use canceled by charge cancellation")
	}
	return nil
}

// Transfer moves value between two wallets at the same store.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	result, err := s.TransferTx(ctx, dbTx, req)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return result, nil
}

// TransferTx runs a transfer inside a caller-owned transaction so group
// pooling and disbanding compose with their own writes. Balance rows are
// locked in wallet id order regardless of direction, which rules out
// deadlocks between opposing transfers.
func (s *LedgerServiceImpl) TransferTx(ctx context.Context, dbTx pgx.Tx, req ports.TransferRequest) (*ports.TransferResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.FromStoreID != req.ToStoreID {
		return nil, apperror.ErrStoreMismatch()
	}
	if req.FromWalletID == req.ToWalletID {
		return nil, apperror.Validation("cannot transfer to the same wallet")
	}
	storeID := req.FromStoreID

	var fromBalance, toBalance int64
	var err error
	if strings.Compare(req.FromWalletID.String(), req.ToWalletID.String()) < 0 {
		fromBalance, err = s.walletRepo.LockBalance(ctx, dbTx, req.FromWalletID, storeID)
		if err == nil {
			toBalance, err = s.walletRepo.LockBalance(ctx, dbTx, req.ToWalletID, storeID)
		}
	} else {
		toBalance, err = s.walletRepo.LockBalance(ctx, dbTx, req.ToWalletID, storeID)
		if err == nil {
			fromBalance, err = s.walletRepo.LockBalance(ctx, dbTx, req.FromWalletID, storeID)
		}
	}
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock balances: %w", err))
	}

	if fromBalance < req.Amount {
		return nil, apperror.ErrInsufficientFunds()
	}

	now := time.Now().UTC()
	lots, err := s.lotRepo.ListOpenLotsForUpdate(ctx, dbTx, req.FromWalletID, storeID, now)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list open lots: %w", err))
	}
	var available int64
	for _, lot := range lots {
		available += lot.RemainingAmount
	}
	if available < req.Amount {
		return nil, apperror.ErrInsufficientFunds()
	}

	outTx := domain.NewTransaction(domain.TransactionTypeTransferOut, req.FromWalletID, storeID, req.Amount)
	outTx.CounterpartyWalletID = &req.ToWalletID
	if err := s.txRepo.Create(ctx, dbTx, outTx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transfer out: %w", err))
	}

	if _, err := s.consumeLots(ctx, dbTx, outTx.ID, lots, req.Amount, now); err != nil {
		return nil, err
	}

	inTx := domain.NewTransaction(domain.TransactionTypeTransferIn, req.ToWalletID, storeID, req.Amount)
	inTx.CounterpartyWalletID = &req.FromWalletID
	inTx.LinkedTransactionID = &outTx.ID
	if err := s.txRepo.Create(ctx, dbTx, inTx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transfer in: %w", err))
	}

	// The receiving side gets a fresh lot so the value is spendable there.
	inLot := domain.NewLot(inTx, 0, nil)
	if err := s.lotRepo.CreateLot(ctx, dbTx, inLot); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transfer lot: %w", err))
	}
	inMove := domain.NewLotMove(inTx.ID, inLot.ID, req.Amount, inTx.CreatedAt)
	if err := s.lotRepo.CreateMove(ctx, dbTx, inMove); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transfer move: %w", err))
	}

	if err := s.walletRepo.SetBalance(ctx, dbTx, req.FromWalletID, storeID, fromBalance-req.Amount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set from balance: %w", err))
	}
	if err := s.walletRepo.SetBalance(ctx, dbTx, req.ToWalletID, storeID, toBalance+req.Amount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set to balance: %w", err))
	}

	s.log.Info().
		Str("out_unique_no", outTx.UniqueNo).
		Str("in_unique_no", inTx.UniqueNo).
		Int64("amount", req.Amount).
		Msg("transfer processed")

	return &ports.TransferResult{
		Out:         outTx,
		In:          inTx,
		FromBalance: fromBalance - req.Amount,
		ToBalance:   toBalance + req.Amount,
	}, nil
}

// GetBalance reads the balance projection for one (wallet, store) pair.
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, walletID, storeID uuid.UUID) (int64, error) {
	balance, err := s.walletRepo.GetBalance(ctx, walletID, storeID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("get balance: %w", err))
	}
	return balance, nil
}

// ListBalances reads every store balance of a wallet.
func (s *LedgerServiceImpl) ListBalances(ctx context.Context, walletID uuid.UUID) ([]domain.WalletStoreBalance, error) {
	balances, err := s.walletRepo.ListBalances(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list balances: %w", err))
	}
	return balances, nil
}

// ListTransactions returns filtered ledger history.
func (s *LedgerServiceImpl) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	txs, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return txs, total, nil
}
