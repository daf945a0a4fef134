package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from IntentStatus
		to   IntentStatus
		want bool
	}{
		{"pending to approved", IntentStatusPending, IntentStatusApproved, true},
		{"pending to declined", IntentStatusPending, IntentStatusDeclined, true},
		{"pending to canceled", IntentStatusPending, IntentStatusCanceled, true},
		{"pending to expired", IntentStatusPending, IntentStatusExpired, true},
		{"pending to completed skips approval", IntentStatusPending, IntentStatusCompleted, false},
		{"approved to completed", IntentStatusApproved, IntentStatusCompleted, true},
		{"approved to declined", IntentStatusApproved, IntentStatusDeclined, false},
		{"completed is terminal", IntentStatusCompleted, IntentStatusPending, false},
		{"declined is terminal", IntentStatusDeclined, IntentStatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminalIntentStatus(t *testing.T) {
	assert.False(t, IsTerminalIntentStatus(IntentStatusPending))
	assert.False(t, IsTerminalIntentStatus(IntentStatusApproved))
	assert.True(t, IsTerminalIntentStatus(IntentStatusDeclined))
	assert.True(t, IsTerminalIntentStatus(IntentStatusCanceled))
	assert.True(t, IsTerminalIntentStatus(IntentStatusExpired))
	assert.True(t, IsTerminalIntentStatus(IntentStatusCompleted))
}

func TestQrTokenLifecycle(t *testing.T) {
	token := NewQrToken(uuid.New(), uuid.New(), QrModeCPQR, uuid.New(), 60*time.Second)

	assert.Equal(t, QrStateIssued, token.State)
	assert.False(t, token.IsTerminal())
	assert.False(t, token.IsExpired(time.Now().UTC()))
	assert.True(t, token.IsExpired(time.Now().UTC().Add(61*time.Second)))

	token.State = QrStateConsumed
	assert.True(t, token.IsTerminal())
}

func TestValidQrTokenMode(t *testing.T) {
	assert.True(t, ValidQrTokenMode("CPQR"))
	assert.True(t, ValidQrTokenMode("MPQR"))
	assert.True(t, ValidQrTokenMode("REFUND"))
	assert.False(t, ValidQrTokenMode("cpqr"))
	assert.False(t, ValidQrTokenMode(""))
}

func TestTransactionUniqueNoPrefixes(t *testing.T) {
	tests := []struct {
		txType TransactionType
		prefix string
	}{
		{TransactionTypeCharge, "CHG-"},
		{TransactionTypeUse, "USE-"},
		{TransactionTypeTransferIn, "TRI-"},
		{TransactionTypeTransferOut, "TRO-"},
		{TransactionTypeCancelCharge, "CCH-"},
		{TransactionTypeCancelUse, "CUS-"},
	}

	for _, tt := range tests {
		t.Run(string(tt.txType), func(t *testing.T) {
			tx := NewTransaction(tt.txType, uuid.New(), uuid.New(), 1000)
			assert.True(t, strings.HasPrefix(tx.UniqueNo, tt.prefix))
			assert.Equal(t, tt.prefix+tx.ID.String(), tx.UniqueNo)
		})
	}
}

func TestTransactionKindPredicates(t *testing.T) {
	charge := NewTransaction(TransactionTypeCharge, uuid.New(), uuid.New(), 500)
	use := NewTransaction(TransactionTypeUse, uuid.New(), uuid.New(), 500)
	cancelUse := NewTransaction(TransactionTypeCancelUse, uuid.New(), uuid.New(), 500)
	transferIn := NewTransaction(TransactionTypeTransferIn, uuid.New(), uuid.New(), 500)

	assert.True(t, charge.IsCancelable())
	assert.True(t, use.IsCancelable())
	assert.False(t, cancelUse.IsCancelable())
	assert.False(t, transferIn.IsCancelable())

	assert.True(t, cancelUse.IsReversal())
	assert.False(t, charge.IsReversal())
}

func TestNewLotMirrorsCharge(t *testing.T) {
	charge := NewTransaction(TransactionTypeCharge, uuid.New(), uuid.New(), 3000)
	lot := NewLot(charge, 5, nil)

	assert.Equal(t, charge.WalletID, lot.WalletID)
	assert.Equal(t, charge.StoreID, lot.StoreID)
	assert.Equal(t, charge.ID, lot.ChargeTransactionID)
	assert.Equal(t, int64(3150), lot.InitialAmount)
	assert.Equal(t, int64(3150), lot.RemainingAmount)
	assert.Equal(t, 5, lot.BonusPercent)
	assert.False(t, lot.IsExhausted())
	assert.False(t, lot.IsExpired(time.Now().UTC()))

	lot.RemainingAmount = 0
	assert.True(t, lot.IsExhausted())
}

func TestNewLotBonusSizing(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		bonus    int
		credited int64
	}{
		{"no bonus", 1000, 0, 1000},
		{"ten percent", 1000, 10, 1100},
		{"fraction floored", 999, 10, 1098},
		{"full match", 500, 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charge := NewTransaction(TransactionTypeCharge, uuid.New(), uuid.New(), tt.amount)
			lot := NewLot(charge, tt.bonus, nil)
			assert.Equal(t, tt.credited, lot.InitialAmount)
			assert.Equal(t, tt.credited, lot.RemainingAmount)
		})
	}
}

func TestWalletConstructors(t *testing.T) {
	customerID := uuid.New()
	individual := NewCustomerWallet(customerID, nil)
	require.NotNil(t, individual.OwnerCustomerID)
	assert.Equal(t, customerID, *individual.OwnerCustomerID)
	assert.Nil(t, individual.OwnerGroupID)
	assert.Equal(t, WalletKindIndividual, individual.Kind)
	assert.True(t, individual.IsActive())

	groupID := uuid.New()
	shared := NewGroupWallet(groupID)
	require.NotNil(t, shared.OwnerGroupID)
	assert.Equal(t, groupID, *shared.OwnerGroupID)
	assert.Nil(t, shared.OwnerCustomerID)
	assert.Equal(t, WalletKindGroup, shared.Kind)

	shared.Status = WalletStatusClosed
	assert.False(t, shared.IsActive())
}

func TestIdempotencyScopeCacheKey(t *testing.T) {
	scope := IdempotencyScope{
		ActorType: ActorTypeCustomer,
		ActorID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Method:    "POST",
		Path:      "/api/v1/wallets/charge",
		Key:       uuid.MustParse("22222222-2222-2222-2222-222222222222"),
	}
	assert.Equal(t,
		"CUSTOMER:11111111-1111-1111-1111-111111111111:POST:/api/v1/wallets/charge:22222222-2222-2222-2222-222222222222",
		scope.CacheKey())
}

func TestHashRequestBody(t *testing.T) {
	a := HashRequestBody([]byte(`{"amount":1000}`))
	b := HashRequestBody([]byte(`{"amount":1000}`))
	c := HashRequestBody([]byte(`{"amount":2000}`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestSplitByContribution(t *testing.T) {
	w1 := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	w2 := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	w3 := uuid.MustParse("00000000-0000-0000-0000-000000000003")

	tests := []struct {
		name          string
		balance       int64
		contributions []MemberContribution
		want          []int64
	}{
		{
			name:    "proportional exact",
			balance: 100,
			contributions: []MemberContribution{
				{WalletID: w1, Net: 50},
				{WalletID: w2, Net: 30},
				{WalletID: w3, Net: 20},
			},
			want: []int64{50, 30, 20},
		},
		{
			name:    "largest remainder rounds the biggest fraction up",
			balance: 100,
			contributions: []MemberContribution{
				{WalletID: w1, Net: 1},
				{WalletID: w2, Net: 1},
				{WalletID: w3, Net: 1},
			},
			want: []int64{34, 33, 33},
		},
		{
			name:    "non positive contributors get nothing",
			balance: 90,
			contributions: []MemberContribution{
				{WalletID: w1, Net: 60},
				{WalletID: w2, Net: 0},
				{WalletID: w3, Net: 30},
			},
			want: []int64{60, 0, 30},
		},
		{
			name:    "no positive contributions falls back to equal split",
			balance: 10,
			contributions: []MemberContribution{
				{WalletID: w1, Net: 0},
				{WalletID: w2, Net: 0},
				{WalletID: w3, Net: 0},
			},
			want: []int64{4, 3, 3},
		},
		{
			name:    "zero balance",
			balance: 0,
			contributions: []MemberContribution{
				{WalletID: w1, Net: 50},
			},
			want: []int64{0},
		},
		{
			name:          "no members",
			balance:       100,
			contributions: nil,
			want:          []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitByContribution(tt.balance, tt.contributions)
			assert.Equal(t, tt.want, got)

			var sum int64
			for _, s := range got {
				sum += s
			}
			if tt.balance > 0 && len(tt.contributions) > 0 {
				assert.Equal(t, tt.balance, sum)
			}
		})
	}
}

func TestSplitByContributionDeterministicTieBreak(t *testing.T) {
	w1 := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	w2 := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	contributions := []MemberContribution{
		{WalletID: w2, Net: 10},
		{WalletID: w1, Net: 10},
	}

	// Equal weight and remainder; the lower wallet id takes the extra point.
	got := SplitByContribution(5, contributions)
	assert.Equal(t, []int64{2, 3}, got)
}

func TestNewPaymentIntentBindsToken(t *testing.T) {
	token := NewQrToken(uuid.New(), uuid.New(), QrModeCPQR, uuid.New(), time.Minute)
	storeID := uuid.New()
	intent := NewPaymentIntent(token, storeID, 4500, 5*time.Minute)

	assert.Equal(t, token.ID, intent.QrTokenID)
	assert.Equal(t, token.WalletID, intent.WalletID)
	assert.Equal(t, token.CustomerID, intent.CustomerID)
	assert.Equal(t, storeID, intent.StoreID)
	assert.Equal(t, IntentStatusPending, intent.Status)
	assert.False(t, intent.IsExpired(time.Now().UTC()))
	assert.True(t, intent.IsExpired(time.Now().UTC().Add(6*time.Minute)))
}
