package handler

import (
	"time"

	"prepaid-point-ledger/internal/adapter/http/dto"
	"prepaid-point-ledger/internal/adapter/http/middleware"
	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"
	"prepaid-point-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler exposes wallet lifecycle and read endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
	ledgerSvc ports.LedgerService
	sessions  ports.SessionStore
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, ledgerSvc ports.LedgerService, sessions ports.SessionStore) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, ledgerSvc: ledgerSvc, sessions: sessions}
}

// Create handles POST /api/v1/wallets. The caller presents a finalized
// registration session; the wallet is created for the identity it holds.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	identity, err := h.sessions.GetIdentity(c.Request.Context(), req.SessionID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if identity == nil {
		response.Error(c, apperror.ErrNotFound("registration session"))
		return
	}

	wallet, err := h.walletSvc.CreateForCustomer(c.Request.Context(), identity.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(wallet))
}

// GetMine handles GET /api/v1/wallets/me for the authenticated customer.
func (h *WalletHandler) GetMine(c *gin.Context) {
	customerID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallet, err := h.walletSvc.GetByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(wallet))
}

// ListBalances handles GET /api/v1/wallets/:id/balances.
func (h *WalletHandler) ListBalances(c *gin.Context) {
	walletID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if !h.authorizeWalletRead(c, walletID) {
		return
	}

	balances, err := h.ledgerSvc.ListBalances(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.BalanceListResponse{WalletID: walletID.String(), Balances: []dto.BalanceResponse{}}
	for _, b := range balances {
		resp.Balances = append(resp.Balances, dto.BalanceResponse{
			WalletID: b.WalletID.String(),
			StoreID:  b.StoreID.String(),
			Balance:  b.Balance,
		})
	}
	response.OK(c, resp)
}

// GetBalance handles GET /api/v1/wallets/:id/balances/:storeId.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	walletID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	storeID, ok := pathUUID(c, "storeId")
	if !ok {
		return
	}
	if !h.authorizeWalletRead(c, walletID) {
		return
	}

	balance, err := h.ledgerSvc.GetBalance(c.Request.Context(), walletID, storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		WalletID: walletID.String(),
		StoreID:  storeID.String(),
		Balance:  balance,
	})
}

// ListTransactions handles GET /api/v1/wallets/:id/transactions with
// optional store_id, type, from, to, page and page_size query filters.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	walletID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if !h.authorizeWalletRead(c, walletID) {
		return
	}

	params := ports.TransactionListParams{WalletID: walletID, Page: 1, PageSize: 20}
	var query struct {
		StoreID  string `form:"store_id" binding:"omitempty,uuid"`
		Type     string `form:"type" binding:"omitempty,oneof=CHARGE USE TRANSFER_IN TRANSFER_OUT CANCEL_CHARGE CANCEL_USE"`
		From     *int64 `form:"from"`
		To       *int64 `form:"to"`
		Page     int    `form:"page" binding:"omitempty,gte=1"`
		PageSize int    `form:"page_size" binding:"omitempty,gte=1,lte=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if query.StoreID != "" {
		storeID := uuid.MustParse(query.StoreID)
		params.StoreID = &storeID
	}
	if query.Type != "" {
		txType := domain.TransactionType(query.Type)
		params.Type = &txType
	}
	params.From = query.From
	params.To = query.To
	if query.Page > 0 {
		params.Page = query.Page
	}
	if query.PageSize > 0 {
		params.PageSize = query.PageSize
	}

	items, total, err := h.ledgerSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.TransactionListResponse{
		Items:      []dto.TransactionResponse{},
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: int((total + int64(params.PageSize) - 1) / int64(params.PageSize)),
	}
	for i := range items {
		resp.Items = append(resp.Items, toTransactionResponse(&items[i]))
	}
	response.OK(c, resp)
}

// authorizeWalletRead enforces wallet-level read access: customers may only
// read their own wallet; store owners may read any wallet they transact with.
func (h *WalletHandler) authorizeWalletRead(c *gin.Context, walletID uuid.UUID) bool {
	rawType, _ := c.Get(middleware.CtxActorType)
	actorType, _ := rawType.(domain.ActorType)
	if actorType == domain.ActorTypeOwner {
		return true
	}

	actorID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return false
	}

	wallet, err := h.walletSvc.Get(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return false
	}
	if wallet.OwnerCustomerID == nil || *wallet.OwnerCustomerID != actorID {
		response.Error(c, apperror.ErrForbidden())
		return false
	}
	return true
}

// unixTimePtr converts an optional Unix timestamp to a time pointer.
func unixTimePtr(ts *int64) *time.Time {
	if ts == nil {
		return nil
	}
	t := time.Unix(*ts, 0).UTC()
	return &t
}
