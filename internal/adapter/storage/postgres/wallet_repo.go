package postgres

import (
	"context"
	"errors"
	"fmt"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet into the database.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, kind, owner_customer_id, owner_group_id, user_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.Kind, w.OwnerCustomerID, w.OwnerGroupID,
		w.UserKey, w.Status, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, kind, owner_customer_id, owner_group_id, user_key, status, created_at, updated_at
		FROM wallets WHERE id = $1`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Kind, &w.OwnerCustomerID, &w.OwnerGroupID,
		&w.UserKey, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by id: %w", err)
	}
	return w, nil
}

// GetByCustomerID fetches a customer's individual wallet.
func (r *WalletRepo) GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, kind, owner_customer_id, owner_group_id, user_key, status, created_at, updated_at
		FROM wallets WHERE owner_customer_id = $1`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&w.ID, &w.Kind, &w.OwnerCustomerID, &w.OwnerGroupID,
		&w.UserKey, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by customer id: %w", err)
	}
	return w, nil
}

// GetByGroupID fetches a group's shared wallet.
func (r *WalletRepo) GetByGroupID(ctx context.Context, groupID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, kind, owner_customer_id, owner_group_id, user_key, status, created_at, updated_at
		FROM wallets WHERE owner_group_id = $1`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, groupID).Scan(
		&w.ID, &w.Kind, &w.OwnerCustomerID, &w.OwnerGroupID,
		&w.UserKey, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by group id: %w", err)
	}
	return w, nil
}

// UpdateStatus changes a wallet's lifecycle status within a transaction.
func (r *WalletRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.WalletStatus) error {
	query := `UPDATE wallets SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update wallet status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", id)
	}
	return nil
}

// LockBalance upserts the (wallet, store) balance row and locks it for the
// rest of the transaction. The conflict-update path takes a row lock, so
// concurrent mutations at the same pair serialize here.
func (r *WalletRepo) LockBalance(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID) (int64, error) {
	query := `INSERT INTO wallet_store_balances (wallet_id, store_id, balance, updated_at)
		VALUES ($1, $2, 0, NOW())
		ON CONFLICT (wallet_id, store_id) DO UPDATE SET wallet_id = EXCLUDED.wallet_id
		RETURNING balance`

	var balance int64
	if err := tx.QueryRow(ctx, query, walletID, storeID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("lock balance: %w", err)
	}
	return balance, nil
}

// SetBalance writes the balance projection within a transaction. The caller
// must hold the row lock via LockBalance.
func (r *WalletRepo) SetBalance(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID, balance int64) error {
	query := `UPDATE wallet_store_balances SET balance = $1, updated_at = NOW()
		WHERE wallet_id = $2 AND store_id = $3`

	tag, err := tx.Exec(ctx, query, balance, walletID, storeID)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("balance row not found: wallet %s store %s", walletID, storeID)
	}
	return nil
}

// GetBalance reads the balance projection without locking. A missing row
// means the pair has never been charged: zero.
func (r *WalletRepo) GetBalance(ctx context.Context, walletID, storeID uuid.UUID) (int64, error) {
	query := `SELECT balance FROM wallet_store_balances WHERE wallet_id = $1 AND store_id = $2`

	var balance int64
	err := r.pool.QueryRow(ctx, query, walletID, storeID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

// ListBalances returns every store balance of a wallet.
func (r *WalletRepo) ListBalances(ctx context.Context, walletID uuid.UUID) ([]domain.WalletStoreBalance, error) {
	query := `SELECT wallet_id, store_id, balance, updated_at
		FROM wallet_store_balances WHERE wallet_id = $1 ORDER BY store_id`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()

	return scanBalances(rows)
}

// ListBalancesForUpdate returns every store balance of a wallet, locked for
// the rest of the transaction. Used when disbanding a group.
func (r *WalletRepo) ListBalancesForUpdate(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) ([]domain.WalletStoreBalance, error) {
	query := `SELECT wallet_id, store_id, balance, updated_at
		FROM wallet_store_balances WHERE wallet_id = $1 ORDER BY store_id FOR UPDATE`

	rows, err := tx.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list balances for update: %w", err)
	}
	defer rows.Close()

	return scanBalances(rows)
}

func scanBalances(rows pgx.Rows) ([]domain.WalletStoreBalance, error) {
	var balances []domain.WalletStoreBalance
	for rows.Next() {
		var b domain.WalletStoreBalance
		if err := rows.Scan(&b.WalletID, &b.StoreID, &b.Balance, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance row: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balance rows: %w", err)
	}
	return balances, nil
}
