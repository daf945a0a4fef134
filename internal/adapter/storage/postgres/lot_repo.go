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

// LotRepo implements ports.LotRepository.
type LotRepo struct {
	pool Pool
}

// NewLotRepo creates a new LotRepo.
func NewLotRepo(pool Pool) *LotRepo {
	return &LotRepo{pool: pool}
}

// CreateLot inserts a lot within a transaction.
func (r *LotRepo) CreateLot(ctx context.Context, tx pgx.Tx, lot *domain.WalletStoreLot) error {
	query := `INSERT INTO wallet_store_lots
		(id, wallet_id, store_id, charge_transaction_id, initial_amount, remaining_amount, bonus_percent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		lot.ID, lot.WalletID, lot.StoreID, lot.ChargeTransactionID,
		lot.InitialAmount, lot.RemainingAmount, lot.BonusPercent,
		lot.ExpiresAt, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetLotForUpdate fetches a lot by id with pessimistic locking.
func (r *LotRepo) GetLotForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletStoreLot, error) {
	query := lotSelect + ` WHERE id = $1 FOR UPDATE`
	return r.scanLotRow(tx.QueryRow(ctx, query, id), "get lot for update")
}

// GetLotByChargeTxForUpdate fetches the lot created by a charge transaction,
// with pessimistic locking.
func (r *LotRepo) GetLotByChargeTxForUpdate(ctx context.Context, tx pgx.Tx, chargeTxID uuid.UUID) (*domain.WalletStoreLot, error) {
	query := lotSelect + ` WHERE charge_transaction_id = $1 FOR UPDATE`
	return r.scanLotRow(tx.QueryRow(ctx, query, chargeTxID), "get lot by charge tx")
}

// ListOpenLotsForUpdate returns the consumable lots of a (wallet, store) pair
// oldest first, locked FOR UPDATE. Lots with an expiry at or before now are
// excluded.
func (r *LotRepo) ListOpenLotsForUpdate(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID, now time.Time) ([]domain.WalletStoreLot, error) {
	query := lotSelect + `
		WHERE wallet_id = $1 AND store_id = $2 AND remaining_amount > 0
		  AND (expires_at IS NULL OR expires_at > $3)
		ORDER BY created_at, id
		FOR UPDATE`

	rows, err := tx.Query(ctx, query, walletID, storeID, now)
	if err != nil {
		return nil, fmt.Errorf("list open lots: %w", err)
	}
	defer rows.Close()

	var lots []domain.WalletStoreLot
	for rows.Next() {
		var l domain.WalletStoreLot
		if err := rows.Scan(
			&l.ID, &l.WalletID, &l.StoreID, &l.ChargeTransactionID,
			&l.InitialAmount, &l.RemainingAmount, &l.BonusPercent,
			&l.ExpiresAt, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lot row: %w", err)
		}
		lots = append(lots, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lot rows: %w", err)
	}
	return lots, nil
}

// UpdateRemaining writes a lot's remaining amount within a transaction. The
// caller must hold the lot's row lock.
func (r *LotRepo) UpdateRemaining(ctx context.Context, tx pgx.Tx, lotID uuid.UUID, remaining int64) error {
	query := `UPDATE wallet_store_lots SET remaining_amount = $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, remaining, lotID)
	if err != nil {
		return fmt.Errorf("update lot remaining: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lot not found: %s", lotID)
	}
	return nil
}

// CreateMove appends one signed lot adjustment within a transaction.
func (r *LotRepo) CreateMove(ctx context.Context, tx pgx.Tx, move *domain.WalletLotMove) error {
	query := `INSERT INTO wallet_lot_moves (id, transaction_id, lot_id, delta, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, move.ID, move.TransactionID, move.LotID, move.Delta, move.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert lot move: %w", err)
	}
	return nil
}

// ListMovesByTransaction returns the moves recorded by one transaction, in
// insertion order.
func (r *LotRepo) ListMovesByTransaction(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) ([]domain.WalletLotMove, error) {
	query := `SELECT id, transaction_id, lot_id, delta, created_at
		FROM wallet_lot_moves WHERE transaction_id = $1 ORDER BY created_at, id`

	rows, err := tx.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list moves by transaction: %w", err)
	}
	defer rows.Close()

	return scanMoves(rows)
}

// ListMovesByLot returns every move ever recorded against one lot.
func (r *LotRepo) ListMovesByLot(ctx context.Context, tx pgx.Tx, lotID uuid.UUID) ([]domain.WalletLotMove, error) {
	query := `SELECT id, transaction_id, lot_id, delta, created_at
		FROM wallet_lot_moves WHERE lot_id = $1 ORDER BY created_at, id`

	rows, err := tx.Query(ctx, query, lotID)
	if err != nil {
		return nil, fmt.Errorf("list moves by lot: %w", err)
	}
	defer rows.Close()

	return scanMoves(rows)
}

const lotSelect = `SELECT id, wallet_id, store_id, charge_transaction_id, initial_amount, remaining_amount, bonus_percent, expires_at, created_at
	FROM wallet_store_lots`

func (r *LotRepo) scanLotRow(row pgx.Row, op string) (*domain.WalletStoreLot, error) {
	l := &domain.WalletStoreLot{}
	err := row.Scan(
		&l.ID, &l.WalletID, &l.StoreID, &l.ChargeTransactionID,
		&l.InitialAmount, &l.RemainingAmount, &l.BonusPercent,
		&l.ExpiresAt, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

func scanMoves(rows pgx.Rows) ([]domain.WalletLotMove, error) {
	var moves []domain.WalletLotMove
	for rows.Next() {
		var m domain.WalletLotMove
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.LotID, &m.Delta, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan move row: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate move rows: %w", err)
	}
	return moves, nil
}
