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

// GroupHandler exposes shared group wallet coordination.
type GroupHandler struct {
	groupSvc   ports.GroupService
	retryAfter time.Duration
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupSvc ports.GroupService, retryAfter time.Duration) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc, retryAfter: retryAfter}
}

// Create handles POST /api/v1/groups. The creator becomes the first member.
func (h *GroupHandler) Create(c *gin.Context) {
	customerID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	group, wallet, err := h.groupSvc.CreateGroup(c.Request.Context(), ports.CreateGroupRequest{
		Name:      req.Name,
		CreatorID: customerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toGroupResponse(group, wallet.ID, nil))
}

// Get handles GET /api/v1/groups/:id.
func (h *GroupHandler) Get(c *gin.Context) {
	groupID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	group, members, err := h.groupSvc.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toGroupResponse(group, uuid.Nil, members))
}

// Join handles POST /api/v1/groups/:id/join for the authenticated customer.
func (h *GroupHandler) Join(c *gin.Context) {
	groupID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	customerID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if err := h.groupSvc.JoinGroup(c.Request.Context(), groupID, customerID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"group_id": groupID.String(), "customer_id": customerID.String()})
}

// Share handles POST /api/v1/groups/:id/share: the member pools funds into
// the group wallet. Deduplication runs inside the service so the transfer
// and its idempotency claim commit together; the handler only builds the
// scope from the Idempotency-Key header.
func (h *GroupHandler) Share(c *gin.Context) {
	groupID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	customerID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	key, err := uuid.Parse(c.GetHeader(middleware.HeaderIdempotencyKey))
	if err != nil {
		response.Error(c, apperror.ErrIdempotencyKeyMissing())
		return
	}

	var req dto.PointShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.groupSvc.PointShare(c.Request.Context(), ports.PointShareRequest{
		GroupID:    groupID,
		CustomerID: customerID,
		StoreID:    uuid.MustParse(req.StoreID),
		Amount:     req.Amount,
		Scope: domain.IdempotencyScope{
			ActorType: domain.ActorTypeCustomer,
			ActorID:   customerID,
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Key:       key,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch {
	case result.InProgress:
		response.Accepted(c, h.retryAfter)
	case result.Replayed:
		response.Replay(c, result.ResponseStatus, result.ResponseBody)
	default:
		response.OK(c, toTransferResponse(result.Transfer))
	}
}

// Disband handles POST /api/v1/groups/:id/disband: refund every member pro
// rata and close the group wallet.
func (h *GroupHandler) Disband(c *gin.Context) {
	groupID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	customerID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	result, err := h.groupSvc.DisbandGroup(c.Request.Context(), groupID, customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.DisbandResponse{GroupID: result.GroupID.String(), Refunds: []dto.RefundResponse{}}
	for _, refund := range result.Refunds {
		resp.Refunds = append(resp.Refunds, dto.RefundResponse{
			WalletID: refund.WalletID.String(),
			StoreID:  refund.StoreID.String(),
			Amount:   refund.Amount,
		})
	}
	response.OK(c, resp)
}
