package middleware

import (
	"fmt"
	"strconv"
	"time"

	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"
	"prepaid-point-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a fixed-window rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the per-group rate limits.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"charge":    {Limit: 30, Window: time.Minute},
		"use":       {Limit: 60, Window: time.Minute},
		"qr":        {Limit: 60, Window: time.Minute},
		"intent":    {Limit: 60, Window: time.Minute},
		"group":     {Limit: 30, Window: time.Minute},
		"read":      {Limit: 120, Window: time.Minute},
		"dev_token": {Limit: 10, Window: time.Minute},
	}
}

// RateLimiter counts requests per actor (or client IP before auth) in a
// fixed window. Store failures degrade to allowing the request.
func RateLimiter(store ports.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		count, err := store.Increment(c.Request.Context(), key, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		remaining := rule.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(rule.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > rule.Limit {
			c.Header("Retry-After", strconv.FormatInt(int64(rule.Window.Seconds()), 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier keys the limiter by authenticated actor when available,
// falling back to the client IP.
func extractIdentifier(c *gin.Context) string {
	if actorID, exists := c.Get(CtxActorID); exists {
		return fmt.Sprintf("%v", actorID)
	}
	return c.ClientIP()
}
