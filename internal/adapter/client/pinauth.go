package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"prepaid-point-ledger/internal/core/ports"

	"github.com/google/uuid"
)

// PinAuthClient implements ports.PinVerifier against the external
// authentication service's PIN endpoint.
type PinAuthClient struct {
	baseURL string
	http    *http.Client
}

// NewPinAuthClient creates a PIN verification client.
func NewPinAuthClient(baseURL string, timeout time.Duration) *PinAuthClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PinAuthClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type pinVerifyRequest struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Pin        string    `json:"pin"`
}

type pinVerifyResponse struct {
	Result string `json:"result"` // OK, MISMATCH, LOCKED
}

// VerifyPin checks the PIN with the external service. Transport and
// non-2xx/4xx failures are returned as errors so the caller fails closed.
func (c *PinAuthClient) VerifyPin(ctx context.Context, customerID uuid.UUID, pin string) (ports.PinVerdict, error) {
	payload, err := json.Marshal(pinVerifyRequest{CustomerID: customerID, Pin: pin})
	if err != nil {
		return "", fmt.Errorf("marshaling pin request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/pin/verify", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building pin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling pin service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body pinVerifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("decoding pin response: %w", err)
		}
		switch body.Result {
		case "OK":
			return ports.PinVerdictOK, nil
		case "MISMATCH":
			return ports.PinVerdictMismatch, nil
		case "LOCKED":
			return ports.PinVerdictLocked, nil
		default:
			return "", fmt.Errorf("unknown pin verdict: %q", body.Result)
		}
	case http.StatusUnauthorized:
		return ports.PinVerdictMismatch, nil
	case http.StatusLocked:
		return ports.PinVerdictLocked, nil
	default:
		return "", fmt.Errorf("pin service returned status %d", resp.StatusCode)
	}
}
