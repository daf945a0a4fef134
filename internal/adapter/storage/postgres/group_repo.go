package postgres

import (
	"context"
	"errors"
	"fmt"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GroupRepo implements ports.GroupRepository.
type GroupRepo struct {
	pool Pool
}

// NewGroupRepo creates a new GroupRepo.
func NewGroupRepo(pool Pool) *GroupRepo {
	return &GroupRepo{pool: pool}
}

// Create inserts a new group.
func (r *GroupRepo) Create(ctx context.Context, g *domain.Group) error {
	query := `INSERT INTO groups (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, g.ID, g.Name, g.Status, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GetByID fetches a group by id (without locking).
func (r *GroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	query := `SELECT id, name, status, created_at, updated_at FROM groups WHERE id = $1`
	return r.scanRow(r.pool.QueryRow(ctx, query, id), "get group by id")
}

// GetByIDForUpdate fetches a group with pessimistic locking. Disbanding holds
// this lock for the whole refund transaction.
func (r *GroupRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Group, error) {
	query := `SELECT id, name, status, created_at, updated_at FROM groups WHERE id = $1 FOR UPDATE`
	return r.scanRow(tx.QueryRow(ctx, query, id), "get group for update")
}

// MarkDisbanded moves an ACTIVE group to DISBANDED within a transaction.
func (r *GroupRepo) MarkDisbanded(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `UPDATE groups SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`

	tag, err := tx.Exec(ctx, query, domain.GroupStatusDisbanded, id, domain.GroupStatusActive)
	if err != nil {
		return fmt.Errorf("mark group disbanded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group not active: %s", id)
	}
	return nil
}

// AddMember inserts a membership row. Duplicate joins are rejected by the
// primary key on (group_id, customer_id).
func (r *GroupRepo) AddMember(ctx context.Context, m *domain.GroupMember) error {
	query := `INSERT INTO group_members (group_id, customer_id, wallet_id, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (group_id, customer_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, m.GroupID, m.CustomerID, m.WalletID, m.JoinedAt)
	if err != nil {
		return fmt.Errorf("insert group member: %w", err)
	}
	return nil
}

// ListMembers returns a group's members in join order.
func (r *GroupRepo) ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.GroupMember, error) {
	query := `SELECT group_id, customer_id, wallet_id, joined_at
		FROM group_members WHERE group_id = $1 ORDER BY joined_at, customer_id`

	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	defer rows.Close()

	var members []domain.GroupMember
	for rows.Next() {
		var m domain.GroupMember
		if err := rows.Scan(&m.GroupID, &m.CustomerID, &m.WalletID, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group members: %w", err)
	}
	return members, nil
}

// IsMember reports whether a customer belongs to a group.
func (r *GroupRepo) IsMember(ctx context.Context, groupID, customerID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND customer_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, groupID, customerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check group membership: %w", err)
	}
	return exists, nil
}

func (r *GroupRepo) scanRow(row pgx.Row, op string) (*domain.Group, error) {
	g := &domain.Group{}
	err := row.Scan(&g.ID, &g.Name, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return g, nil
}
