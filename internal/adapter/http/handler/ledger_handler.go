package handler

import (
	"prepaid-point-ledger/internal/adapter/http/dto"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"
	"prepaid-point-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler exposes the lot-backed ledger mutations.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
	walletSvc ports.WalletService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService, walletSvc ports.WalletService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc, walletSvc: walletSvc}
}

// Charge handles POST /api/v1/wallets/:id/charge. Only the store being
// prepaid may load value, so the body's store must be the calling owner.
func (h *LedgerHandler) Charge(c *gin.Context) {
	walletID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	storeID := uuid.MustParse(req.StoreID)
	actorID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	if storeID != actorID {
		response.Error(c, apperror.ErrForbidden())
		return
	}

	result, err := h.ledgerSvc.Charge(c.Request.Context(), ports.ChargeRequest{
		WalletID:     walletID,
		StoreID:      storeID,
		Amount:       req.Amount,
		BonusPercent: req.BonusPercent,
		ExpiresAt:    unixTimePtr(req.ExpiresAt),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ChargeResponse{
		Transaction: toTransactionResponse(result.Transaction),
		LotID:       result.Lot.ID.String(),
		ExpiresAt:   fmtTimePtr(result.Lot.ExpiresAt),
		Balance:     result.Balance,
	})
}

// Use handles POST /api/v1/wallets/:id/use, a direct spend by the wallet
// owner outside the QR flow.
func (h *LedgerHandler) Use(c *gin.Context) {
	walletID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if !h.requireOwnWallet(c, walletID) {
		return
	}

	var req dto.UseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.ledgerSvc.UseLot(c.Request.Context(), ports.UseRequest{
		WalletID: walletID,
		StoreID:  uuid.MustParse(req.StoreID),
		Amount:   req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.UseResponse{
		Transaction: toTransactionResponse(result.Transaction),
		LotsTouched: len(result.Moves),
		Balance:     result.Balance,
	})
}

// CancelUse handles POST /api/v1/transactions/:uniqueNo/cancel-use.
func (h *LedgerHandler) CancelUse(c *gin.Context) {
	uniqueNo := c.Param("uniqueNo")
	if uniqueNo == "" {
		response.Error(c, apperror.Validation("uniqueNo is required"))
		return
	}

	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	walletID := uuid.MustParse(req.WalletID)
	if !h.requireOwnWallet(c, walletID) {
		return
	}

	reversal, err := h.ledgerSvc.CancelUse(c.Request.Context(), ports.CancelRequest{
		WalletID: walletID,
		UniqueNo: uniqueNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransactionResponse(reversal))
}

// CancelCharge handles POST /api/v1/transactions/:uniqueNo/cancel-charge,
// the merchant-side full refund of a prepay.
func (h *LedgerHandler) CancelCharge(c *gin.Context) {
	uniqueNo := c.Param("uniqueNo")
	if uniqueNo == "" {
		response.Error(c, apperror.Validation("uniqueNo is required"))
		return
	}

	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	reversal, err := h.ledgerSvc.CancelCharge(c.Request.Context(), ports.CancelRequest{
		WalletID: uuid.MustParse(req.WalletID),
		UniqueNo: uniqueNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransactionResponse(reversal))
}

// Transfer handles POST /api/v1/transfers between two individual wallets at
// the same store. The caller must own the sending wallet.
func (h *LedgerHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	fromWalletID := uuid.MustParse(req.FromWalletID)
	if !h.requireOwnWallet(c, fromWalletID) {
		return
	}

	result, err := h.ledgerSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		FromWalletID: fromWalletID,
		ToWalletID:   uuid.MustParse(req.ToWalletID),
		FromStoreID:  uuid.MustParse(req.FromStoreID),
		ToStoreID:    uuid.MustParse(req.ToStoreID),
		Amount:       req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransferResponse(result))
}

// requireOwnWallet rejects the request unless the authenticated customer
// owns the wallet.
func (h *LedgerHandler) requireOwnWallet(c *gin.Context, walletID uuid.UUID) bool {
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
