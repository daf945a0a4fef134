package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prepaid-point-ledger/internal/adapter/client"
	"prepaid-point-ledger/internal/adapter/events/rabbitmq"
	httpHandler "prepaid-point-ledger/internal/adapter/http/handler"
	redisStorage "prepaid-point-ledger/internal/adapter/storage/redis"
	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/internal/service"
	"prepaid-point-ledger/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds the full application stack: real HTTP layer, middleware,
// handlers and services over in-memory repos, with miniredis behind the
// replay cache, lockout store and session store.

type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	// Redis stores
	replayCache := redisStorage.NewReplayCache(rdb)
	lockoutStore := redisStorage.NewLockoutStore(rdb)
	sessionStore := redisStorage.NewSessionStore(rdb)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// In-memory repos
	walletRepo := newInMemoryWalletRepo()
	lotRepo := newInMemoryLotRepo()
	txRepo := newInMemoryTransactionRepo()
	idempotencyRepo := newInMemoryIdempotencyRepo()
	qrRepo := newInMemoryQrTokenRepo()
	intentRepo := newInMemoryIntentRepo()
	groupRepo := newInMemoryGroupRepo()
	pinRepo := newInMemoryPinRepo()
	transactor := newInMemoryTransactor()

	log := logger.New("debug", false)

	// Core services with real implementations
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "test-issuer")
	hashSvc := service.NewArgon2HashService()
	pinSvc := service.NewBundledPinService(pinRepo, hashSvc, lockoutStore, 5, 15*time.Minute, log)

	publisher := rabbitmq.NewNopPublisher(log)

	ledgerSvc := service.NewLedgerService(walletRepo, lotRepo, txRepo, transactor, publisher, log)
	idemSvc := service.NewIdempotencyService(idempotencyRepo, replayCache, log)
	qrSvc := service.NewQrTokenService(qrRepo, walletRepo, transactor, log)
	intentSvc := service.NewIntentService(intentRepo, qrRepo, ledgerSvc, pinSvc, transactor, publisher, 5*time.Minute, log)
	groupSvc := service.NewGroupService(groupRepo, walletRepo, txRepo, ledgerSvc, idemSvc, transactor, log)
	walletSvc := service.NewWalletService(walletRepo, client.NopProviderLink{}, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:      walletSvc,
		LedgerSvc:      ledgerSvc,
		QrSvc:          qrSvc,
		IntentSvc:      intentSvc,
		GroupSvc:       groupSvc,
		PinSvc:         pinSvc,
		IdemSvc:        idemSvc,
		TokenSvc:       tokenSvc,
		Sessions:       sessionStore,
		HealthCheckers: []ports.HealthChecker{redisHealth},
		RetryAfter:     2 * time.Second,
		Logger:         log,
	})

	server := httptest.NewServer(router)

	return &testApp{server: server, redis: mr}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

// --- request helpers ---

type apiResponse struct {
	status  int
	headers http.Header
	body    map[string]interface{}
	raw     []byte
}

func (r apiResponse) data(t *testing.T) map[string]interface{} {
	t.Helper()
	data, ok := r.body["data"].(map[string]interface{})
	require.True(t, ok, "no data envelope in %s", string(r.raw))
	return data
}

func (r apiResponse) errorCode() string {
	code, _ := r.body["error_code"].(string)
	return code
}

func (a *testApp) do(t *testing.T, method, path, token, idemKey string, payload interface{}) apiResponse {
	t.Helper()
	var reqBody []byte
	if payload != nil {
		var err error
		reqBody, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, a.server.URL+path, bytes.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw bytes.Buffer
	_, err = raw.ReadFrom(resp.Body)
	require.NoError(t, err)

	out := apiResponse{status: resp.StatusCode, headers: resp.Header, raw: raw.Bytes()}
	if raw.Len() > 0 {
		_ = json.Unmarshal(raw.Bytes(), &out.body)
	}
	return out
}

// issueToken mints an actor token through the development endpoint.
func (a *testApp) issueToken(t *testing.T, actorType string, actorID uuid.UUID) string {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/v1/auth/token", "", "", map[string]string{
		"actor_type": actorType,
		"actor_id":   actorID.String(),
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))
	return resp.data(t)["token"].(string)
}

// seedSession writes a finalized registration identity the way the
// onboarding service would.
func (a *testApp) seedSession(t *testing.T, sessionID string, customerID uuid.UUID) {
	t.Helper()
	payload, err := json.Marshal(domain.RegistrationIdentity{CustomerID: customerID, DisplayName: "Test Customer"})
	require.NoError(t, err)
	require.NoError(t, a.redis.Set("regsession:"+sessionID, string(payload)))
}

// createWallet runs the full wallet onboarding for a fresh customer and
// returns the customer id, wallet id and a customer token.
func (a *testApp) createWallet(t *testing.T) (uuid.UUID, uuid.UUID, string) {
	t.Helper()
	customerID := uuid.New()
	sessionID := "sess-" + customerID.String()
	a.seedSession(t, sessionID, customerID)

	resp := a.do(t, http.MethodPost, "/api/v1/wallets", "", "", map[string]string{"session_id": sessionID})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.raw))
	walletID, err := uuid.Parse(resp.data(t)["id"].(string))
	require.NoError(t, err)

	return customerID, walletID, a.issueToken(t, "CUSTOMER", customerID)
}

// charge loads value into a wallet as the store owner.
func (a *testApp) charge(t *testing.T, walletID, storeID uuid.UUID, amount int64) {
	t.Helper()
	ownerToken := a.issueToken(t, "OWNER", storeID)
	resp := a.do(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/charge", ownerToken, uuid.NewString(), map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   amount,
	})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.raw))
}

func (a *testApp) balance(t *testing.T, token string, walletID, storeID uuid.UUID) int64 {
	t.Helper()
	resp := a.do(t, http.MethodGet, "/api/v1/wallets/"+walletID.String()+"/balances/"+storeID.String(), token, "", nil)
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))
	return int64(resp.data(t)["balance"].(float64))
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_WalletOnboarding(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	customerID := uuid.New()
	app.seedSession(t, "sess-onboard", customerID)

	resp := app.do(t, http.MethodPost, "/api/v1/wallets", "", "", map[string]string{"session_id": "sess-onboard"})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.raw))
	assert.Equal(t, customerID.String(), resp.data(t)["owner_customer_id"])

	// A second wallet for the same customer is rejected.
	resp = app.do(t, http.MethodPost, "/api/v1/wallets", "", "", map[string]string{"session_id": "sess-onboard"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "VAL_001", resp.errorCode())

	// Unknown session.
	resp = app.do(t, http.MethodPost, "/api/v1/wallets", "", "", map[string]string{"session_id": "sess-nope"})
	assert.Equal(t, http.StatusNotFound, resp.status)
}

func TestIntegration_ChargeAndUse_OldestLotFirst(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletID, customerToken := app.createWallet(t)
	storeID := uuid.New()

	app.charge(t, walletID, storeID, 3000)
	app.charge(t, walletID, storeID, 2000)
	require.Equal(t, int64(5000), app.balance(t, customerToken, walletID, storeID))

	resp := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/use", customerToken, uuid.NewString(), map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   4000,
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))
	data := resp.data(t)
	assert.Equal(t, float64(1000), data["balance"])
	// 3000 lot drained fully, 2000 lot partially: two lots touched.
	assert.Equal(t, float64(2), data["lots_touched"])

	assert.Equal(t, int64(1000), app.balance(t, customerToken, walletID, storeID))
}

func TestIntegration_Charge_BonusCredited(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletID, customerToken := app.createWallet(t)
	storeID := uuid.New()
	ownerToken := app.issueToken(t, "OWNER", storeID)

	// Paying 1000 with a 10% prepay bonus credits 1100.
	resp := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/charge", ownerToken, uuid.NewString(), map[string]interface{}{
		"store_id":      storeID.String(),
		"amount":        1000,
		"bonus_percent": 10,
	})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.raw))
	assert.Equal(t, float64(1100), resp.data(t)["balance"])
	chargeTx := resp.data(t)["transaction"].(map[string]interface{})
	assert.Equal(t, float64(1000), chargeTx["amount"])

	assert.Equal(t, int64(1100), app.balance(t, customerToken, walletID, storeID))

	// The whole credit, bonus included, is spendable.
	resp = app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/use", customerToken, uuid.NewString(), map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   1100,
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))
	assert.Equal(t, float64(0), resp.data(t)["balance"])
}

func TestIntegration_Use_InsufficientBalance(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletID, customerToken := app.createWallet(t)
	storeID := uuid.New()
	app.charge(t, walletID, storeID, 1000)

	resp := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/use", customerToken, uuid.NewString(), map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   1500,
	})
	assert.Equal(t, http.StatusPaymentRequired, resp.status)
	assert.Equal(t, "LED_001", resp.errorCode())
}

func TestIntegration_IdempotentUse_DuplicateReplays(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletID, customerToken := app.createWallet(t)
	storeID := uuid.New()
	app.charge(t, walletID, storeID, 5000)

	key := uuid.NewString()
	body := map[string]interface{}{"store_id": storeID.String(), "amount": 2000}
	path := "/api/v1/wallets/" + walletID.String() + "/use"

	first := app.do(t, http.MethodPost, path, customerToken, key, body)
	require.Equal(t, http.StatusOK, first.status, string(first.raw))

	second := app.do(t, http.MethodPost, path, customerToken, key, body)
	require.Equal(t, http.StatusOK, second.status)
	assert.Equal(t, "true", second.headers.Get("X-Idempotency-Replay"))
	assert.JSONEq(t, string(first.raw), string(second.raw))

	// Only one spend happened.
	assert.Equal(t, int64(3000), app.balance(t, customerToken, walletID, storeID))

	// Same key, different body: conflict.
	conflict := app.do(t, http.MethodPost, path, customerToken, key, map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   999,
	})
	assert.Equal(t, http.StatusConflict, conflict.status)
	assert.Equal(t, "IDEM_001", conflict.errorCode())
}

func TestIntegration_CancelUse_RestoresBalance(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletID, customerToken := app.createWallet(t)
	storeID := uuid.New()
	app.charge(t, walletID, storeID, 5000)

	useResp := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/use", customerToken, uuid.NewString(), map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   3000,
	})
	require.Equal(t, http.StatusOK, useResp.status)
	useTx := useResp.data(t)["transaction"].(map[string]interface{})
	uniqueNo := useTx["transaction_unique_no"].(string)

	cancelResp := app.do(t, http.MethodPost, "/api/v1/transactions/"+uniqueNo+"/cancel-use", customerToken, uuid.NewString(), map[string]string{
		"wallet_id": walletID.String(),
	})
	require.Equal(t, http.StatusOK, cancelResp.status, string(cancelResp.raw))
	assert.Equal(t, "CANCEL_USE", cancelResp.data(t)["type"])

	assert.Equal(t, int64(5000), app.balance(t, customerToken, walletID, storeID))

	// A second cancel of the same spend conflicts.
	again := app.do(t, http.MethodPost, "/api/v1/transactions/"+uniqueNo+"/cancel-use", customerToken, uuid.NewString(), map[string]string{
		"wallet_id": walletID.String(),
	})
	assert.Equal(t, http.StatusConflict, again.status)
	assert.Equal(t, "LED_004", again.errorCode())
}

func TestIntegration_QrPaymentFlow(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	customerID, walletID, customerToken := app.createWallet(t)
	_ = customerID
	storeID := uuid.New()
	ownerToken := app.issueToken(t, "OWNER", storeID)

	app.charge(t, walletID, storeID, 20000)

	// Enroll PIN
	resp := app.do(t, http.MethodPost, "/api/v1/pin", customerToken, "", map[string]string{"pin": "482916"})
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))

	// Customer presents a QR token
	resp = app.do(t, http.MethodPost, "/api/v1/qr-tokens", customerToken, "", map[string]interface{}{
		"wallet_id":   walletID.String(),
		"mode":        "CPQR",
		"ttl_seconds": 60,
	})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.raw))
	qrTokenID := resp.data(t)["id"].(string)

	// Store scans it and proposes a payment
	resp = app.do(t, http.MethodPost, "/api/v1/payments", ownerToken, "", map[string]interface{}{
		"qr_token_id": qrTokenID,
		"items": []map[string]interface{}{
			{"name": "Americano", "unit_price": 4500, "quantity": 2},
			{"name": "Croissant", "unit_price": 3800, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.raw))
	publicID := resp.data(t)["public_id"].(string)
	assert.Equal(t, float64(12800), resp.data(t)["total_amount"])

	// The consumed token cannot start a second payment
	dup := app.do(t, http.MethodPost, "/api/v1/payments", ownerToken, "", map[string]interface{}{
		"qr_token_id": qrTokenID,
		"items":       []map[string]interface{}{{"name": "Americano", "unit_price": 4500, "quantity": 1}},
	})
	assert.Equal(t, http.StatusConflict, dup.status)
	assert.Equal(t, "QR_002", dup.errorCode())

	// Wrong PIN does not spend
	resp = app.do(t, http.MethodPost, "/api/v1/payments/"+publicID+"/approve", customerToken, uuid.NewString(), map[string]string{"pin": "000000"})
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, "PIN_001", resp.errorCode())
	assert.Equal(t, int64(20000), app.balance(t, customerToken, walletID, storeID))

	// Correct PIN commits the spend
	resp = app.do(t, http.MethodPost, "/api/v1/payments/"+publicID+"/approve", customerToken, uuid.NewString(), map[string]string{"pin": "482916"})
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))
	assert.Equal(t, float64(7200), resp.data(t)["balance"])

	intentData := resp.data(t)["intent"].(map[string]interface{})
	assert.Equal(t, "COMPLETED", intentData["status"])

	// Approving again is an invalid transition
	resp = app.do(t, http.MethodPost, "/api/v1/payments/"+publicID+"/approve", customerToken, uuid.NewString(), map[string]string{"pin": "482916"})
	assert.Equal(t, http.StatusConflict, resp.status)
	assert.Equal(t, "INT_001", resp.errorCode())
}

func TestIntegration_QrToken_RevokedCannotInitiate(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletID, customerToken := app.createWallet(t)
	storeID := uuid.New()
	ownerToken := app.issueToken(t, "OWNER", storeID)

	resp := app.do(t, http.MethodPost, "/api/v1/qr-tokens", customerToken, "", map[string]interface{}{
		"wallet_id":   walletID.String(),
		"mode":        "CPQR",
		"ttl_seconds": 60,
	})
	require.Equal(t, http.StatusCreated, resp.status)
	qrTokenID := resp.data(t)["id"].(string)

	resp = app.do(t, http.MethodPost, "/api/v1/qr-tokens/"+qrTokenID+"/revoke", customerToken, "", nil)
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))

	resp = app.do(t, http.MethodPost, "/api/v1/payments", ownerToken, "", map[string]interface{}{
		"qr_token_id": qrTokenID,
		"items":       []map[string]interface{}{{"name": "Americano", "unit_price": 4500, "quantity": 1}},
	})
	assert.Equal(t, http.StatusGone, resp.status)
	assert.Equal(t, "QR_003", resp.errorCode())
}

func TestIntegration_QrToken_StoreBindingEnforced(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletID, customerToken := app.createWallet(t)
	boundStore := uuid.New()
	otherStore := uuid.New()
	otherOwner := app.issueToken(t, "OWNER", otherStore)

	// Customer binds the token to one store.
	resp := app.do(t, http.MethodPost, "/api/v1/qr-tokens", customerToken, "", map[string]interface{}{
		"wallet_id":   walletID.String(),
		"mode":        "CPQR",
		"store_id":    boundStore.String(),
		"ttl_seconds": 60,
	})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.raw))
	qrTokenID := resp.data(t)["id"].(string)

	// A different store scanning it cannot start a payment.
	resp = app.do(t, http.MethodPost, "/api/v1/payments", otherOwner, "", map[string]interface{}{
		"qr_token_id": qrTokenID,
		"items":       []map[string]interface{}{{"name": "Latte", "unit_price": 5000, "quantity": 1}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.status)
	assert.Equal(t, "LED_003", resp.errorCode())

	// The rejection happens before the consume, so the token stays usable.
	resp = app.do(t, http.MethodGet, "/api/v1/qr-tokens/"+qrTokenID, customerToken, "", nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "ISSUED", resp.data(t)["state"])
}

func TestIntegration_GroupLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// Two members with funded wallets at the same store. Group wallet
	// balances are read with a store owner token; members do not own it.
	_, walletA, tokenA := app.createWallet(t)
	_, walletB, tokenB := app.createWallet(t)
	storeID := uuid.New()
	ownerToken := app.issueToken(t, "OWNER", storeID)
	app.charge(t, walletA, storeID, 10000)
	app.charge(t, walletB, storeID, 10000)

	// Member A creates the group.
	resp := app.do(t, http.MethodPost, "/api/v1/groups", tokenA, "", map[string]string{"name": "Trip Fund"})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.raw))
	groupID := resp.data(t)["id"].(string)
	groupWalletID, err := uuid.Parse(resp.data(t)["wallet_id"].(string))
	require.NoError(t, err)

	// Member B joins.
	resp = app.do(t, http.MethodPost, "/api/v1/groups/"+groupID+"/join", tokenB, "", nil)
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))

	// A shares 6000, B shares 4000.
	resp = app.do(t, http.MethodPost, "/api/v1/groups/"+groupID+"/share", tokenA, uuid.NewString(), map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   6000,
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))
	resp = app.do(t, http.MethodPost, "/api/v1/groups/"+groupID+"/share", tokenB, uuid.NewString(), map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   4000,
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))

	assert.Equal(t, int64(10000), app.balance(t, ownerToken, groupWalletID, storeID))
	assert.Equal(t, int64(4000), app.balance(t, tokenA, walletA, storeID))
	assert.Equal(t, int64(6000), app.balance(t, tokenB, walletB, storeID))

	// Disband refunds pro rata by contribution: 6000 back to A, 4000 to B.
	resp = app.do(t, http.MethodPost, "/api/v1/groups/"+groupID+"/disband", tokenA, uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))
	refunds := resp.data(t)["refunds"].([]interface{})
	require.Len(t, refunds, 2)

	assert.Equal(t, int64(0), app.balance(t, ownerToken, groupWalletID, storeID))
	assert.Equal(t, int64(10000), app.balance(t, tokenA, walletA, storeID))
	assert.Equal(t, int64(10000), app.balance(t, tokenB, walletB, storeID))

	// Sharing into a disbanded group fails.
	resp = app.do(t, http.MethodPost, "/api/v1/groups/"+groupID+"/share", tokenA, uuid.NewString(), map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   100,
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "VAL_001", resp.errorCode())
}

func TestIntegration_PinLockout(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	customerID, walletID, customerToken := app.createWallet(t)
	_ = customerID
	storeID := uuid.New()
	ownerToken := app.issueToken(t, "OWNER", storeID)
	app.charge(t, walletID, storeID, 10000)

	resp := app.do(t, http.MethodPost, "/api/v1/pin", customerToken, "", map[string]string{"pin": "482916"})
	require.Equal(t, http.StatusOK, resp.status)

	resp = app.do(t, http.MethodPost, "/api/v1/qr-tokens", customerToken, "", map[string]interface{}{
		"wallet_id":   walletID.String(),
		"mode":        "CPQR",
		"ttl_seconds": 60,
	})
	require.Equal(t, http.StatusCreated, resp.status)
	qrTokenID := resp.data(t)["id"].(string)

	resp = app.do(t, http.MethodPost, "/api/v1/payments", ownerToken, "", map[string]interface{}{
		"qr_token_id": qrTokenID,
		"items":       []map[string]interface{}{{"name": "Lunch", "unit_price": 9000, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.status)
	publicID := resp.data(t)["public_id"].(string)

	// Five wrong PINs lock the credential; the fifth reports the lock.
	for i := 0; i < 4; i++ {
		resp = app.do(t, http.MethodPost, "/api/v1/payments/"+publicID+"/approve", customerToken, uuid.NewString(), map[string]string{"pin": "111111"})
		assert.Equal(t, http.StatusUnauthorized, resp.status, "attempt %d", i+1)
	}
	resp = app.do(t, http.MethodPost, "/api/v1/payments/"+publicID+"/approve", customerToken, uuid.NewString(), map[string]string{"pin": "111111"})
	assert.Equal(t, http.StatusLocked, resp.status)
	assert.Equal(t, "PIN_002", resp.errorCode())

	// Even the correct PIN is rejected while locked.
	resp = app.do(t, http.MethodPost, "/api/v1/payments/"+publicID+"/approve", customerToken, uuid.NewString(), map[string]string{"pin": "482916"})
	assert.Equal(t, http.StatusLocked, resp.status)
	assert.Equal(t, int64(10000), app.balance(t, customerToken, walletID, storeID))
}

func TestIntegration_Transfer_SameStoreOnly(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletA, tokenA := app.createWallet(t)
	_, walletB, _ := app.createWallet(t)
	storeID := uuid.New()
	otherStore := uuid.New()
	app.charge(t, walletA, storeID, 5000)

	resp := app.do(t, http.MethodPost, "/api/v1/transfers", tokenA, uuid.NewString(), map[string]interface{}{
		"from_wallet_id": walletA.String(),
		"to_wallet_id":   walletB.String(),
		"from_store_id":  storeID.String(),
		"to_store_id":    otherStore.String(),
		"amount":         1000,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.status)
	assert.Equal(t, "LED_003", resp.errorCode())

	resp = app.do(t, http.MethodPost, "/api/v1/transfers", tokenA, uuid.NewString(), map[string]interface{}{
		"from_wallet_id": walletA.String(),
		"to_wallet_id":   walletB.String(),
		"from_store_id":  storeID.String(),
		"to_store_id":    storeID.String(),
		"amount":         1000,
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))
	assert.Equal(t, float64(4000), resp.data(t)["from_balance"])
	assert.Equal(t, float64(1000), resp.data(t)["to_balance"])
}

func TestIntegration_AuthRequired(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	walletID := uuid.New()

	// No token
	resp := app.do(t, http.MethodPost, "/api/v1/qr-tokens", "", "", map[string]interface{}{
		"wallet_id":   walletID.String(),
		"mode":        "CPQR",
		"ttl_seconds": 60,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.status)

	// Owner token on a customer endpoint
	ownerToken := app.issueToken(t, "OWNER", uuid.New())
	resp = app.do(t, http.MethodPost, "/api/v1/qr-tokens", ownerToken, "", map[string]interface{}{
		"wallet_id":   walletID.String(),
		"mode":        "CPQR",
		"ttl_seconds": 60,
	})
	assert.Equal(t, http.StatusForbidden, resp.status)

	// Garbage token
	resp = app.do(t, http.MethodGet, "/api/v1/wallets/me", "not-a-jwt", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.status)
}

func TestIntegration_MissingIdempotencyKey(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletID, customerToken := app.createWallet(t)
	storeID := uuid.New()

	resp := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/use", customerToken, "", map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   100,
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "IDEM_002", resp.errorCode())

	// Non-UUID key is rejected the same way.
	resp = app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/use", customerToken, "not-a-uuid", map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   100,
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "IDEM_002", resp.errorCode())
}

func TestIntegration_TransactionHistory(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, walletID, customerToken := app.createWallet(t)
	storeID := uuid.New()
	app.charge(t, walletID, storeID, 3000)
	app.charge(t, walletID, storeID, 2000)

	useResp := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/use", customerToken, uuid.NewString(), map[string]interface{}{
		"store_id": storeID.String(),
		"amount":   1000,
	})
	require.Equal(t, http.StatusOK, useResp.status)

	resp := app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/wallets/%s/transactions?store_id=%s", walletID, storeID), customerToken, "", nil)
	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))
	assert.Equal(t, float64(3), resp.data(t)["total"])

	resp = app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/wallets/%s/transactions?type=USE", walletID), customerToken, "", nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, float64(1), resp.data(t)["total"])
}
