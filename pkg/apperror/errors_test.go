package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New("LED_002", "Invalid amount", http.StatusBadRequest)
	assert.Equal(t, "[LED_002] Invalid amount", e.Error())

	wrapped := Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, fmt.Errorf("pool closed"))
	assert.Contains(t, wrapped.Error(), "pool closed")
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	e := InternalError(inner)
	assert.True(t, errors.Is(e, inner))
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(ErrInsufficientFunds(), "LED_001"))
	assert.False(t, HasCode(ErrInsufficientFunds(), "LED_002"))
	assert.False(t, HasCode(errors.New("plain"), "LED_001"))
}

func TestTaxonomyStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"insufficient funds", ErrInsufficientFunds(), "LED_001", http.StatusPaymentRequired},
		{"invalid amount", ErrInvalidAmount(), "LED_002", http.StatusBadRequest},
		{"store mismatch", ErrStoreMismatch(), "LED_003", http.StatusUnprocessableEntity},
		{"already canceled", ErrAlreadyCanceled(), "LED_004", http.StatusConflict},
		{"not found", ErrNotFound("wallet"), "LED_005", http.StatusNotFound},
		{"token expired", ErrTokenExpired(), "QR_001", http.StatusGone},
		{"token consumed", ErrTokenAlreadyConsumed(), "QR_002", http.StatusConflict},
		{"token revoked", ErrTokenRevoked(), "QR_003", http.StatusGone},
		{"bad transition", ErrInvalidStateTransition("COMPLETED", "PENDING"), "INT_001", http.StatusConflict},
		{"intent expired", ErrIntentExpired(), "INT_002", http.StatusGone},
		{"idempotency conflict", ErrIdempotencyKeyConflict(), "IDEM_001", http.StatusConflict},
		{"idempotency in progress", ErrIdempotencyInProgress(), "IDEM_003", http.StatusAccepted},
		{"pin locked", ErrPinLocked(), "PIN_002", http.StatusLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestErrNotFound_Entity(t *testing.T) {
	assert.Equal(t, "payment intent not found", ErrNotFound("payment intent").Message)
}
