package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ProviderLinkClient implements ports.ProviderLinkClient against the payment
// provider's account linkage lookup.
type ProviderLinkClient struct {
	baseURL string
	http    *http.Client
}

// NewProviderLinkClient creates a provider linkage client.
func NewProviderLinkClient(baseURL string, timeout time.Duration) *ProviderLinkClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ProviderLinkClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type userKeyResponse struct {
	UserKey string `json:"user_key"`
}

// LookupUserKey resolves the opaque provider-side key for a customer.
// A 404 means the customer has no linkage yet: ("", nil).
func (c *ProviderLinkClient) LookupUserKey(ctx context.Context, customerID uuid.UUID) (string, error) {
	url := fmt.Sprintf("%s/v1/links/%s", c.baseURL, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building linkage request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling provider linkage: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body userKeyResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("decoding linkage response: %w", err)
		}
		return body.UserKey, nil
	case http.StatusNotFound:
		return "", nil
	default:
		return "", fmt.Errorf("provider linkage returned status %d", resp.StatusCode)
	}
}

// NopProviderLink reports no linkage for every customer. Used when no
// provider base URL is configured.
type NopProviderLink struct{}

// LookupUserKey always returns an absent linkage.
func (NopProviderLink) LookupUserKey(_ context.Context, _ uuid.UUID) (string, error) {
	return "", nil
}
