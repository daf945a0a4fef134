package postgres

import (
	"context"
	"errors"
	"fmt"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const transactionSelect = `SELECT id, transaction_unique_no, type, wallet_id, store_id, amount,
	counterparty_wallet_id, linked_transaction_id, reverses_transaction_id, created_at
	FROM transactions`

// Create appends a ledger row within a transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions
		(id, transaction_unique_no, type, wallet_id, store_id, amount, counterparty_wallet_id, linked_transaction_id, reverses_transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.UniqueNo, t.Type, t.WalletID, t.StoreID, t.Amount,
		t.CounterpartyWalletID, t.LinkedTransactionID, t.ReversesTransactionID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a ledger row by id.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return r.scanRow(r.pool.QueryRow(ctx, transactionSelect+` WHERE id = $1`, id), "get transaction by id")
}

// GetByUniqueNo fetches a ledger row by its external reference number.
func (r *TransactionRepo) GetByUniqueNo(ctx context.Context, uniqueNo string) (*domain.Transaction, error) {
	return r.scanRow(r.pool.QueryRow(ctx, transactionSelect+` WHERE transaction_unique_no = $1`, uniqueNo), "get transaction by unique no")
}

// List returns filtered transactions newest first, plus the total count.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	where := ` WHERE wallet_id = $1`
	args := []any{params.WalletID}

	if params.StoreID != nil {
		args = append(args, *params.StoreID)
		where += fmt.Sprintf(" AND store_id = $%d", len(args))
	}
	if params.Type != nil {
		args = append(args, *params.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if params.From != nil {
		args = append(args, *params.From)
		where += fmt.Sprintf(" AND created_at >= to_timestamp($%d)", len(args))
	}
	if params.To != nil {
		args = append(args, *params.To)
		where += fmt.Sprintf(" AND created_at <= to_timestamp($%d)", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	args = append(args, pageSize, (page-1)*pageSize)
	listQuery := transactionSelect + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID, &t.UniqueNo, &t.Type, &t.WalletID, &t.StoreID, &t.Amount,
			&t.CounterpartyWalletID, &t.LinkedTransactionID, &t.ReversesTransactionID, &t.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txs, total, nil
}

// ReversalExists reports whether a cancellation row already targets the
// given transaction.
func (r *TransactionRepo) ReversalExists(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM transactions WHERE reverses_transaction_id = $1)`

	var exists bool
	if err := tx.QueryRow(ctx, query, transactionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check reversal exists: %w", err)
	}
	return exists, nil
}

// NetContributions aggregates per counterparty the net value transferred into
// walletID at storeID. TRANSFER_IN rows add, TRANSFER_OUT rows subtract.
func (r *TransactionRepo) NetContributions(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID) ([]domain.MemberContribution, error) {
	query := `SELECT counterparty_wallet_id,
			SUM(CASE WHEN type = 'TRANSFER_IN' THEN amount ELSE -amount END) AS net
		FROM transactions
		WHERE wallet_id = $1 AND store_id = $2
		  AND type IN ('TRANSFER_IN', 'TRANSFER_OUT')
		  AND counterparty_wallet_id IS NOT NULL
		GROUP BY counterparty_wallet_id
		ORDER BY counterparty_wallet_id`

	rows, err := tx.Query(ctx, query, walletID, storeID)
	if err != nil {
		return nil, fmt.Errorf("net contributions: %w", err)
	}
	defer rows.Close()

	var contributions []domain.MemberContribution
	for rows.Next() {
		var c domain.MemberContribution
		if err := rows.Scan(&c.WalletID, &c.Net); err != nil {
			return nil, fmt.Errorf("scan contribution row: %w", err)
		}
		contributions = append(contributions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contribution rows: %w", err)
	}
	return contributions, nil
}

func (r *TransactionRepo) scanRow(row pgx.Row, op string) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.UniqueNo, &t.Type, &t.WalletID, &t.StoreID, &t.Amount,
		&t.CounterpartyWalletID, &t.LinkedTransactionID, &t.ReversesTransactionID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}
