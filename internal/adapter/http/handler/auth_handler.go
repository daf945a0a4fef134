package handler

import (
	"net/http"

	"prepaid-point-ledger/internal/adapter/http/dto"
	"prepaid-point-ledger/internal/adapter/http/middleware"
	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"
	"prepaid-point-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler issues actor tokens and manages PIN enrollment. Token
// issuance is a development endpoint; real deployments put an identity
// provider in front.
type AuthHandler struct {
	tokenSvc ports.TokenService
	pinSvc   ports.PinService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tokenSvc ports.TokenService, pinSvc ports.PinService) *AuthHandler {
	return &AuthHandler{tokenSvc: tokenSvc, pinSvc: pinSvc}
}

// EnrollPin handles POST /api/v1/pin for the authenticated customer.
func (h *AuthHandler) EnrollPin(c *gin.Context) {
	customerID, ok := actorUUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.EnrollPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.pinSvc.Enroll(c.Request.Context(), customerID, req.Pin); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"enrolled": true})
}

// IssueToken handles POST /api/v1/auth/token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	actorID, err := uuid.Parse(req.ActorID)
	if err != nil {
		response.Error(c, apperror.Validation("actor_id must be a UUID"))
		return
	}

	token, expiry, err := h.tokenSvc.Generate(domain.ActorType(req.ActorType), actorID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.OK(c, dto.IssueTokenResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// HealthCheck handles GET /health, verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}

// actorUUID reads the authenticated actor id set by the JWT middleware.
func actorUUID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(middleware.CtxActorID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

// pathUUID parses a UUID path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation(name+" must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
