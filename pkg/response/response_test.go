package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prepaid-point-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestOK(t *testing.T) {
	c, w := newTestContext()
	OK(c, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	var body SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.RequestID)
	assert.NotEmpty(t, body.Timestamp)
}

func TestCreated(t *testing.T) {
	c, w := newTestContext()
	Created(c, gin.H{"id": "abc"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAccepted_SetsRetryAfter(t *testing.T) {
	c, w := newTestContext()
	Accepted(c, 3*time.Second)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "3", w.Header().Get("Retry-After"))
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "IDEM_003", body.ErrorCode)
}

func TestReplay_SuccessBecomes200(t *testing.T) {
	c, w := newTestContext()
	Replay(c, http.StatusCreated, []byte(`{"data":{"id":"abc"}}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Idempotency-Replay"))
	assert.JSONEq(t, `{"data":{"id":"abc"}}`, w.Body.String())
}

func TestReplay_StoredErrorKeepsStatus(t *testing.T) {
	c, w := newTestContext()
	Replay(c, http.StatusPaymentRequired, []byte(`{"error_code":"LED_001"}`))
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestError_AppError(t *testing.T) {
	c, w := newTestContext()
	Error(c, apperror.ErrInsufficientFunds())

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "LED_001", body.ErrorCode)
}

func TestError_UnknownError(t *testing.T) {
	c, w := newTestContext()
	Error(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SYS_000", body.ErrorCode)
	assert.NotContains(t, body.Message, "boom")
}
