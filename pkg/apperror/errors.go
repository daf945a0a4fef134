package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// ---- Ledger (LED) ----

func ErrInsufficientFunds() *AppError {
	return New("LED_001", "Insufficient lot balance for wallet and store", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("LED_002", "Invalid amount", http.StatusBadRequest)
}

func ErrStoreMismatch() *AppError {
	return New("LED_003", "Operation spans different stores", http.StatusUnprocessableEntity)
}

func ErrAlreadyCanceled() *AppError {
	return New("LED_004", "Transaction has already been canceled", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("LED_005", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrChargeNotCancelable() *AppError {
	return New("LED_006", "Charge lot was consumed by transfers and cannot be fully canceled", http.StatusConflict)
}

// ---- QR tokens (QR) ----

func ErrTokenExpired() *AppError {
	return New("QR_001", "QR token has expired", http.StatusGone)
}

func ErrTokenAlreadyConsumed() *AppError {
	return New("QR_002", "QR token has already been consumed", http.StatusConflict)
}

func ErrTokenRevoked() *AppError {
	return New("QR_003", "QR token has been revoked", http.StatusGone)
}

// ---- Payment intents (INT) ----

func ErrInvalidStateTransition(from, to string) *AppError {
	return New("INT_001", fmt.Sprintf("Invalid state transition %s -> %s", from, to), http.StatusConflict)
}

func ErrIntentExpired() *AppError {
	return New("INT_002", "Payment intent has expired", http.StatusGone)
}

// ---- Idempotency (IDEM) ----

func ErrIdempotencyKeyConflict() *AppError {
	return New("IDEM_001", "Idempotency key reused with a different request body", http.StatusConflict)
}

func ErrIdempotencyKeyMissing() *AppError {
	return New("IDEM_002", "Idempotency-Key header is required", http.StatusBadRequest)
}

func ErrIdempotencyInProgress() *AppError {
	return New("IDEM_003", "A request with this idempotency key is still in progress", http.StatusAccepted)
}

// ---- PIN verification (PIN) ----

func ErrPinMismatch() *AppError {
	return New("PIN_001", "Payment PIN does not match", http.StatusUnauthorized)
}

func ErrPinLocked() *AppError {
	return New("PIN_002", "Payment PIN is locked after repeated failures", http.StatusLocked)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_002", "Actor is not allowed to perform this operation", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
