package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"
	"prepaid-point-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderIdempotencyKey is the client-supplied deduplication key header.
const HeaderIdempotencyKey = "Idempotency-Key"

// bodyCaptureWriter tees the response body so the canonical first response
// can be persisted for replay.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency guards an effectful endpoint against duplicate delivery.
// The key must be a UUID; the scope is (actor, method, path, key), so two
// actors reusing the same key never collide. The first delivery runs the
// handler and persists its response; duplicates replay it; concurrent
// duplicates are told to retry after the hint.
func Idempotency(svc ports.IdempotencyService, retryAfter time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyStr := c.GetHeader(HeaderIdempotencyKey)
		if keyStr == "" {
			response.Error(c, apperror.ErrIdempotencyKeyMissing())
			c.Abort()
			return
		}
		key, err := uuid.Parse(keyStr)
		if err != nil {
			response.Error(c, apperror.ErrIdempotencyKeyMissing())
			c.Abort()
			return
		}

		actorType, typeOK := c.Get(CtxActorType)
		actorID, idOK := c.Get(CtxActorID)
		if !typeOK || !idOK {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Error(c, apperror.Validation("cannot read request body"))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		scope := domain.IdempotencyScope{
			ActorType: actorType.(domain.ActorType),
			ActorID:   actorID.(uuid.UUID),
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Key:       key,
		}
		bodyHash := domain.HashRequestBody(bodyBytes)

		begin, err := svc.Begin(c.Request.Context(), scope, bodyHash)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		switch begin.State {
		case ports.BeginStateReplay:
			response.Replay(c, begin.ResponseStatus, begin.ResponseBody)
			c.Abort()
			return
		case ports.BeginStateInProgress:
			response.Accepted(c, retryAfter)
			c.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			// Server-side failure: release the scope so the retry gets a
			// clean claim.
			if err := svc.Abandon(c.Request.Context(), scope); err != nil {
				log.Error().Err(err).Str("scope", scope.CacheKey()).Msg("failed to release idempotency scope")
			}
			return
		}

		if err := svc.Complete(c.Request.Context(), scope, status, writer.body.Bytes()); err != nil {
			log.Error().Err(err).Str("scope", scope.CacheKey()).Msg("failed to persist canonical response")
		}
	}
}
