package dto

// CreateWalletRequest references a finalized registration session.
type CreateWalletRequest struct {
	SessionID string `json:"session_id" binding:"required,min=1,max=200"`
}

// ChargeRequest is the request body for loading value into a wallet.
// The target wallet comes from the path.
type ChargeRequest struct {
	StoreID      string `json:"store_id" binding:"required,uuid"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
	BonusPercent int    `json:"bonus_percent" binding:"gte=0,lte=100"`
	ExpiresAt    *int64 `json:"expires_at,omitempty"` // Unix timestamp
}

// UseRequest is the request body for spending at a store. The spending
// wallet comes from the path.
type UseRequest struct {
	StoreID string `json:"store_id" binding:"required,uuid"`
	Amount  int64  `json:"amount" binding:"required,gt=0"`
}

// CancelRequest is the request body for canceling a prior transaction.
// The targeted transaction comes from the path.
type CancelRequest struct {
	WalletID string `json:"wallet_id" binding:"required,uuid"`
}

// TransferRequest is the request body for a wallet-to-wallet transfer.
type TransferRequest struct {
	FromWalletID string `json:"from_wallet_id" binding:"required,uuid"`
	ToWalletID   string `json:"to_wallet_id" binding:"required,uuid"`
	FromStoreID  string `json:"from_store_id" binding:"required,uuid"`
	ToStoreID    string `json:"to_store_id" binding:"required,uuid"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
}

// CreateQrTokenRequest is the request body for issuing a scan token.
type CreateQrTokenRequest struct {
	WalletID   string `json:"wallet_id" binding:"required,uuid"`
	Mode       string `json:"mode" binding:"required,oneof=CPQR MPQR REFUND"`
	StoreID    string `json:"store_id,omitempty" binding:"omitempty,uuid"`
	TTLSeconds int    `json:"ttl_seconds" binding:"required,gte=10,lte=300"`
}

// IntentItemRequest is one line item of a payment proposal.
type IntentItemRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	UnitPrice int64  `json:"unit_price" binding:"required,gt=0"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// InitiateIntentRequest is the request body for a store's payment proposal.
type InitiateIntentRequest struct {
	QrTokenID string              `json:"qr_token_id" binding:"required,uuid"`
	Items     []IntentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ApproveIntentRequest carries the customer's PIN for intent approval.
type ApproveIntentRequest struct {
	Pin string `json:"pin" binding:"required,min=4,max=6"`
}

// EnrollPinRequest is the request body for PIN enrollment.
type EnrollPinRequest struct {
	Pin string `json:"pin" binding:"required,min=4,max=6"`
}

// CreateGroupRequest is the request body for creating a group.
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// PointShareRequest is the request body for pooling funds into a group.
type PointShareRequest struct {
	StoreID string `json:"store_id" binding:"required,uuid"`
	Amount  int64  `json:"amount" binding:"required,gt=0"`
}

// IssueTokenRequest is the request body for the development token endpoint.
type IssueTokenRequest struct {
	ActorType string `json:"actor_type" binding:"required,oneof=CUSTOMER OWNER"`
	ActorID   string `json:"actor_id" binding:"required,uuid"`
}

// IssueTokenResponse returns a signed actor token.
type IssueTokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// WalletResponse is the response body for wallet queries.
type WalletResponse struct {
	ID              string  `json:"id"`
	Kind            string  `json:"kind"`
	OwnerCustomerID *string `json:"owner_customer_id,omitempty"`
	OwnerGroupID    *string `json:"owner_group_id,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

// TransactionResponse is the response body for one ledger row.
type TransactionResponse struct {
	ID                    string  `json:"id"`
	TransactionUniqueNo   string  `json:"transaction_unique_no"`
	Type                  string  `json:"type"`
	WalletID              string  `json:"wallet_id"`
	StoreID               string  `json:"store_id"`
	Amount                int64   `json:"amount"`
	CounterpartyWalletID  *string `json:"counterparty_wallet_id,omitempty"`
	ReversesTransactionNo *string `json:"reverses_transaction_id,omitempty"`
	CreatedAt             string  `json:"created_at"`
}

// ChargeResponse is the response body for a successful charge.
type ChargeResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	LotID       string              `json:"lot_id"`
	ExpiresAt   *string             `json:"expires_at,omitempty"`
	Balance     int64               `json:"balance"`
}

// UseResponse is the response body for a successful spend.
type UseResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	LotsTouched int                 `json:"lots_touched"`
	Balance     int64               `json:"balance"`
}

// TransferResponse is the response body for a successful transfer.
type TransferResponse struct {
	OutTransaction TransactionResponse `json:"out_transaction"`
	InTransaction  TransactionResponse `json:"in_transaction"`
	FromBalance    int64               `json:"from_balance"`
	ToBalance      int64               `json:"to_balance"`
}

// BalanceResponse is the response for one (wallet, store) balance.
type BalanceResponse struct {
	WalletID string `json:"wallet_id"`
	StoreID  string `json:"store_id"`
	Balance  int64  `json:"balance"`
}

// BalanceListResponse wraps all store balances of one wallet.
type BalanceListResponse struct {
	WalletID string            `json:"wallet_id"`
	Balances []BalanceResponse `json:"balances"`
}

// TransactionListResponse wraps a paginated ledger history.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// QrTokenResponse is the response body for scan token operations.
type QrTokenResponse struct {
	ID         string  `json:"id"`
	WalletID   string  `json:"wallet_id"`
	Mode       string  `json:"mode"`
	StoreID    string  `json:"store_id,omitempty"`
	State      string  `json:"state"`
	ExpiresAt  string  `json:"expires_at"`
	ConsumedAt *string `json:"consumed_at,omitempty"`
}

// IntentItemResponse is one line item of an intent.
type IntentItemResponse struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// IntentResponse is the response body for payment intent operations.
type IntentResponse struct {
	PublicID    string               `json:"public_id"`
	StoreID     string               `json:"store_id"`
	TotalAmount int64                `json:"total_amount"`
	Status      string               `json:"status"`
	ExpiresAt   string               `json:"expires_at"`
	Items       []IntentItemResponse `json:"items,omitempty"`
}

// ApproveResponse is the response body for a successful approval.
type ApproveResponse struct {
	Intent      IntentResponse      `json:"intent"`
	Transaction TransactionResponse `json:"transaction"`
	Balance     int64               `json:"balance"`
}

// GroupMemberResponse is one member of a group.
type GroupMemberResponse struct {
	CustomerID string `json:"customer_id"`
	WalletID   string `json:"wallet_id"`
	JoinedAt   string `json:"joined_at"`
}

// GroupResponse is the response body for group operations.
type GroupResponse struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Status   string                `json:"status"`
	WalletID string                `json:"wallet_id,omitempty"`
	Members  []GroupMemberResponse `json:"members,omitempty"`
}

// RefundResponse is one member's share of a disband payout.
type RefundResponse struct {
	WalletID string `json:"wallet_id"`
	StoreID  string `json:"store_id"`
	Amount   int64  `json:"amount"`
}

// DisbandResponse is the response body for a group disband.
type DisbandResponse struct {
	GroupID string           `json:"group_id"`
	Refunds []RefundResponse `json:"refunds"`
}
