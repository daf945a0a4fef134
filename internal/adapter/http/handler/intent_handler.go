package handler

import (
	"prepaid-point-ledger/internal/adapter/http/dto"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"
	"prepaid-point-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IntentHandler drives the payment intent flow over HTTP.
type IntentHandler struct {
	intentSvc ports.IntentService
}

// NewIntentHandler creates a new IntentHandler.
func NewIntentHandler(intentSvc ports.IntentService) *IntentHandler {
	return &IntentHandler{intentSvc: intentSvc}
}

// Initiate handles POST /api/v1/payments. The authenticated owner is the
// store proposing the payment; the scanned token is consumed here.
func (h *IntentHandler) Initiate(c *gin.Context) {
	storeID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.InitiateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	items := make([]ports.IntentItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ports.IntentItemInput{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	intent, err := h.intentSvc.Initiate(c.Request.Context(), ports.InitiateIntentRequest{
		QrTokenID: uuid.MustParse(req.QrTokenID),
		StoreID:   storeID,
		Items:     items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toIntentResponse(intent, nil))
}

// Get handles GET /api/v1/payments/:publicId.
func (h *IntentHandler) Get(c *gin.Context) {
	publicID, ok := pathUUID(c, "publicId")
	if !ok {
		return
	}

	intent, items, err := h.intentSvc.Get(c.Request.Context(), publicID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toIntentResponse(intent, items))
}

// Approve handles POST /api/v1/payments/:publicId/approve with the
// customer's PIN. A successful approval commits the spend.
func (h *IntentHandler) Approve(c *gin.Context) {
	publicID, ok := pathUUID(c, "publicId")
	if !ok {
		return
	}
	customerID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ApproveIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.intentSvc.Approve(c.Request.Context(), ports.ApproveIntentRequest{
		CustomerID: customerID,
		PublicID:   publicID,
		Pin:        req.Pin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ApproveResponse{
		Intent:      toIntentResponse(result.Intent, nil),
		Transaction: toTransactionResponse(result.Transaction),
		Balance:     result.Balance,
	})
}

// Decline handles POST /api/v1/payments/:publicId/decline by the customer.
func (h *IntentHandler) Decline(c *gin.Context) {
	publicID, ok := pathUUID(c, "publicId")
	if !ok {
		return
	}
	customerID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if err := h.intentSvc.Decline(c.Request.Context(), customerID, publicID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"public_id": publicID.String(), "status": "DECLINED"})
}

// Cancel handles POST /api/v1/payments/:publicId/cancel by the store.
func (h *IntentHandler) Cancel(c *gin.Context) {
	publicID, ok := pathUUID(c, "publicId")
	if !ok {
		return
	}
	storeID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if err := h.intentSvc.Cancel(c.Request.Context(), storeID, publicID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"public_id": publicID.String(), "status": "CANCELED"})
}
