package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PinRepo implements ports.PinCredentialRepository for the bundled verifier.
type PinRepo struct {
	pool Pool
}

// NewPinRepo creates a new PinRepo.
func NewPinRepo(pool Pool) *PinRepo {
	return &PinRepo{pool: pool}
}

// Upsert stores or replaces a customer's PIN hash.
func (r *PinRepo) Upsert(ctx context.Context, customerID uuid.UUID, pinHash string) error {
	query := `INSERT INTO customer_pins (customer_id, pin_hash, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (customer_id) DO UPDATE SET pin_hash = EXCLUDED.pin_hash, updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query, customerID, pinHash)
	if err != nil {
		return fmt.Errorf("upsert pin: %w", err)
	}
	return nil
}

// GetHash returns a customer's PIN hash, or "" when none is enrolled.
func (r *PinRepo) GetHash(ctx context.Context, customerID uuid.UUID) (string, error) {
	query := `SELECT pin_hash FROM customer_pins WHERE customer_id = $1`

	var hash string
	err := r.pool.QueryRow(ctx, query, customerID).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get pin hash: %w", err)
	}
	return hash, nil
}
