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

// IntentRepo implements ports.IntentRepository.
type IntentRepo struct {
	pool Pool
}

// NewIntentRepo creates a new IntentRepo.
func NewIntentRepo(pool Pool) *IntentRepo {
	return &IntentRepo{pool: pool}
}

const intentSelect = `SELECT id, public_id, qr_token_id, store_id, wallet_id, customer_id,
	total_amount, status, expires_at, created_at, approved_at, completed_at
	FROM payment_intents`

// Create inserts an intent with its line items in one transaction.
func (r *IntentRepo) Create(ctx context.Context, tx pgx.Tx, intent *domain.PaymentIntent, items []domain.PaymentIntentItem) error {
	query := `INSERT INTO payment_intents
		(id, public_id, qr_token_id, store_id, wallet_id, customer_id, total_amount, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		intent.ID, intent.PublicID, intent.QrTokenID, intent.StoreID,
		intent.WalletID, intent.CustomerID, intent.TotalAmount,
		intent.Status, intent.ExpiresAt, intent.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment intent: %w", err)
	}

	itemQuery := `INSERT INTO payment_intent_items (id, intent_id, name, unit_price, quantity, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.IntentID, item.Name, item.UnitPrice, item.Quantity, item.Position,
		); err != nil {
			return fmt.Errorf("insert intent item: %w", err)
		}
	}
	return nil
}

// GetByPublicID fetches an intent by its client-facing id (without locking).
func (r *IntentRepo) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.PaymentIntent, error) {
	return r.scanRow(r.pool.QueryRow(ctx, intentSelect+` WHERE public_id = $1`, publicID), "get intent by public id")
}

// GetByPublicIDForUpdate fetches an intent with pessimistic locking. The lock
// spans the expiry re-check and the ledger mutation of an approval.
func (r *IntentRepo) GetByPublicIDForUpdate(ctx context.Context, tx pgx.Tx, publicID uuid.UUID) (*domain.PaymentIntent, error) {
	return r.scanRow(tx.QueryRow(ctx, intentSelect+` WHERE public_id = $1 FOR UPDATE`, publicID), "get intent for update")
}

// ListItems returns an intent's line items in their original order.
func (r *IntentRepo) ListItems(ctx context.Context, intentID uuid.UUID) ([]domain.PaymentIntentItem, error) {
	query := `SELECT id, intent_id, name, unit_price, quantity, position
		FROM payment_intent_items WHERE intent_id = $1 ORDER BY position`

	rows, err := r.pool.Query(ctx, query, intentID)
	if err != nil {
		return nil, fmt.Errorf("list intent items: %w", err)
	}
	defer rows.Close()

	var items []domain.PaymentIntentItem
	for rows.Next() {
		var item domain.PaymentIntentItem
		if err := rows.Scan(&item.ID, &item.IntentID, &item.Name, &item.UnitPrice, &item.Quantity, &item.Position); err != nil {
			return nil, fmt.Errorf("scan intent item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intent items: %w", err)
	}
	return items, nil
}

// UpdateStatus is a compare-and-set on the intent status.
func (r *IntentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expected, next domain.IntentStatus) (bool, error) {
	query := `UPDATE payment_intents SET status = $1 WHERE id = $2 AND status = $3`

	tag, err := tx.Exec(ctx, query, next, id, expected)
	if err != nil {
		return false, fmt.Errorf("update intent status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkCompleted stamps the approval and completion of a PENDING intent.
func (r *IntentRepo) MarkCompleted(ctx context.Context, tx pgx.Tx, id uuid.UUID, approvedAt, completedAt time.Time) error {
	query := `UPDATE payment_intents
		SET status = $1, approved_at = $2, completed_at = $3
		WHERE id = $4 AND status = $5`

	tag, err := tx.Exec(ctx, query,
		domain.IntentStatusCompleted, approvedAt, completedAt,
		id, domain.IntentStatusPending,
	)
	if err != nil {
		return fmt.Errorf("mark intent completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("intent not pending: %s", id)
	}
	return nil
}

// SweepExpired marks overdue PENDING intents EXPIRED and returns the count.
func (r *IntentRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE payment_intents SET status = $1 WHERE status = $2 AND expires_at <= $3`

	tag, err := r.pool.Exec(ctx, query, domain.IntentStatusExpired, domain.IntentStatusPending, now)
	if err != nil {
		return 0, fmt.Errorf("sweep expired intents: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *IntentRepo) scanRow(row pgx.Row, op string) (*domain.PaymentIntent, error) {
	i := &domain.PaymentIntent{}
	err := row.Scan(
		&i.ID, &i.PublicID, &i.QrTokenID, &i.StoreID, &i.WalletID, &i.CustomerID,
		&i.TotalAmount, &i.Status, &i.ExpiresAt, &i.CreatedAt, &i.ApprovedAt, &i.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return i, nil
}
