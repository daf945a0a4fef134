package handler

import (
	"time"

	"prepaid-point-ledger/internal/adapter/http/middleware"
	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	LedgerSvc      ports.LedgerService
	QrSvc          ports.QrTokenService
	IntentSvc      ports.IntentService
	GroupSvc       ports.GroupService
	PinSvc         ports.PinService
	IdemSvc        ports.IdempotencyService
	TokenSvc       ports.TokenService
	Sessions       ports.SessionStore
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	RetryAfter     time.Duration // hint returned with 202 on concurrent duplicates
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// Duplicate-delivery guard for effectful endpoints.
	idem := middleware.Idempotency(deps.IdemSvc, deps.RetryAfter, deps.Logger)

	customerAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger, domain.ActorTypeCustomer)
	ownerAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger, domain.ActorTypeOwner)
	anyAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.TokenSvc, deps.PinSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/token", rl("dev_token"), authHandler.IssueToken)
	}

	// Wallet creation is authenticated by the finalized registration
	// session it references, not by an actor token.
	walletHandler := NewWalletHandler(deps.WalletSvc, deps.LedgerSvc, deps.Sessions)
	v1.POST("/wallets", rl("read"), walletHandler.Create)

	// --- Customer routes ---
	ledgerHandler := NewLedgerHandler(deps.LedgerSvc, deps.WalletSvc)
	qrHandler := NewQrHandler(deps.QrSvc)
	groupHandler := NewGroupHandler(deps.GroupSvc, deps.RetryAfter)

	v1.GET("/wallets/me", customerAuth, rl("read"), walletHandler.GetMine)
	v1.POST("/pin", customerAuth, rl("read"), authHandler.EnrollPin)

	wallets := v1.Group("/wallets/:id", anyAuth)
	{
		wallets.GET("/balances", rl("read"), walletHandler.ListBalances)
		wallets.GET("/balances/:storeId", rl("read"), walletHandler.GetBalance)
		wallets.GET("/transactions", rl("read"), walletHandler.ListTransactions)
	}

	qrTokens := v1.Group("/qr-tokens")
	{
		qrTokens.POST("", customerAuth, rl("qr"), qrHandler.Create)
		qrTokens.GET("/:id", anyAuth, rl("read"), qrHandler.Get)
		qrTokens.POST("/:id/revoke", customerAuth, rl("qr"), qrHandler.Revoke)
	}

	groups := v1.Group("/groups", customerAuth)
	{
		groups.POST("", rl("group"), groupHandler.Create)
		groups.GET("/:id", rl("read"), groupHandler.Get)
		groups.POST("/:id/join", rl("group"), groupHandler.Join)
		// Share runs its own idempotency claim inside the transfer
		// transaction, so it takes the raw Idempotency-Key header.
		groups.POST("/:id/share", rl("group"), groupHandler.Share)
		groups.POST("/:id/disband", rl("group"), idem, groupHandler.Disband)
	}

	v1.POST("/transfers", customerAuth, rl("use"), idem, ledgerHandler.Transfer)
	v1.POST("/wallets/:id/use", customerAuth, rl("use"), idem, ledgerHandler.Use)
	v1.POST("/transactions/:uniqueNo/cancel-use", customerAuth, rl("use"), idem, ledgerHandler.CancelUse)

	// --- Owner (store) routes ---
	intentHandler := NewIntentHandler(deps.IntentSvc)

	v1.POST("/wallets/:id/charge", ownerAuth, rl("charge"), idem, ledgerHandler.Charge)
	v1.POST("/transactions/:uniqueNo/cancel-charge", ownerAuth, rl("charge"), idem, ledgerHandler.CancelCharge)

	payments := v1.Group("/payments")
	{
		payments.POST("", ownerAuth, rl("intent"), intentHandler.Initiate)
		payments.GET("/:publicId", anyAuth, rl("read"), intentHandler.Get)
		payments.POST("/:publicId/approve", customerAuth, rl("intent"), idem, intentHandler.Approve)
		payments.POST("/:publicId/decline", customerAuth, rl("intent"), intentHandler.Decline)
		payments.POST("/:publicId/cancel", ownerAuth, rl("intent"), intentHandler.Cancel)
	}

	return r
}
