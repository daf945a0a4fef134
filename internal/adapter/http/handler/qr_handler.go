package handler

import (
	"prepaid-point-ledger/internal/adapter/http/dto"
	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"
	"prepaid-point-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QrHandler exposes the scan-token lifecycle.
type QrHandler struct {
	qrSvc ports.QrTokenService
}

// NewQrHandler creates a new QrHandler.
func NewQrHandler(qrSvc ports.QrTokenService) *QrHandler {
	return &QrHandler{qrSvc: qrSvc}
}

// Create handles POST /api/v1/qr-tokens for the authenticated customer.
func (h *QrHandler) Create(c *gin.Context) {
	customerID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateQrTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	svcReq := ports.CreateQrTokenRequest{
		CustomerID: customerID,
		WalletID:   uuid.MustParse(req.WalletID),
		Mode:       domain.QrTokenMode(req.Mode),
		TTLSeconds: req.TTLSeconds,
	}
	if req.StoreID != "" {
		svcReq.StoreID = uuid.MustParse(req.StoreID)
	}

	token, err := h.qrSvc.Create(c.Request.Context(), svcReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toQrTokenResponse(token))
}

// Get handles GET /api/v1/qr-tokens/:id.
func (h *QrHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	token, err := h.qrSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toQrTokenResponse(token))
}

// Revoke handles POST /api/v1/qr-tokens/:id/revoke by the issuing customer.
func (h *QrHandler) Revoke(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	customerID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if err := h.qrSvc.Revoke(c.Request.Context(), customerID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"id": id.String(), "state": string(domain.QrStateRevoked)})
}
