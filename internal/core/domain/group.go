package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// GroupStatus is the lifecycle of a wallet-sharing group.
type GroupStatus string

const (
	GroupStatusActive    GroupStatus = "ACTIVE"
	GroupStatusDisbanded GroupStatus = "DISBANDED"
)

// Group is a set of customers pooling funds into one shared GROUP wallet.
type Group struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Status    GroupStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewGroup creates an ACTIVE group.
func NewGroup(name string) *Group {
	now := time.Now().UTC()
	return &Group{
		ID:        uuid.New(),
		Name:      name,
		Status:    GroupStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive returns true while the group may pool or disband funds.
func (g *Group) IsActive() bool {
	return g.Status == GroupStatusActive
}

// GroupMember links a customer and their individual wallet to a group.
type GroupMember struct {
	GroupID    uuid.UUID `json:"group_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	WalletID   uuid.UUID `json:"wallet_id"` // the member's individual wallet
	JoinedAt   time.Time `json:"joined_at"`
}

// MemberContribution is one member's net lifetime contribution to a group
// wallet's store balance, derived from transfer provenance
// (sum of TRANSFER_IN minus TRANSFER_OUT attributed to that member's wallet).
type MemberContribution struct {
	WalletID uuid.UUID `json:"wallet_id"`
	Net      int64     `json:"net"`
}

// SplitByContribution divides balance across contributions proportionally
// using the largest-remainder method, so the shares always sum exactly to
// balance. Members with non-positive net contribution receive nothing unless
// no member contributed, in which case the split is equal. Ties on the
// fractional remainder break toward the larger contribution, then the lower
// wallet id, so the result is deterministic.
func SplitByContribution(balance int64, contributions []MemberContribution) []int64 {
	n := len(contributions)
	shares := make([]int64, n)
	if balance <= 0 || n == 0 {
		return shares
	}

	weights := make([]int64, n)
	var total int64
	for i, c := range contributions {
		if c.Net > 0 {
			weights[i] = c.Net
			total += c.Net
		}
	}
	if total == 0 {
		for i := range weights {
			weights[i] = 1
		}
		total = int64(n)
	}

	type remainderEntry struct {
		index     int
		remainder int64
		weight    int64
	}
	remainders := make([]remainderEntry, 0, n)

	var assigned int64
	for i, w := range weights {
		if w == 0 {
			continue
		}
		share := balance * w / total
		shares[i] = share
		assigned += share
		remainders = append(remainders, remainderEntry{
			index:     i,
			remainder: balance * w % total,
			weight:    w,
		})
	}

	sort.Slice(remainders, func(a, b int) bool {
		ra, rb := remainders[a], remainders[b]
		if ra.remainder != rb.remainder {
			return ra.remainder > rb.remainder
		}
		if ra.weight != rb.weight {
			return ra.weight > rb.weight
		}
		return contributions[ra.index].WalletID.String() < contributions[rb.index].WalletID.String()
	})

	for i := 0; assigned < balance && i < len(remainders); i++ {
		shares[remainders[i].index]++
		assigned++
	}

	return shares
}
