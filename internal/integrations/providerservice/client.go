package providerservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the logging interface this client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client is an HTTP client for the provider-profile service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient builds a provider-service client with the given timeout.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProvider fetches a provider profile by id.
func (c *Client) GetProvider(ctx context.Context, providerID int64) (*Provider, error) {
	url := fmt.Sprintf("%s/internal/providers/%d", c.baseURL, providerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		return nil, ErrProviderNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid provider ID format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var provider Provider
	if err := json.NewDecoder(resp.Body).Decode(&provider); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if provider.Timezone == "" {
		return nil, fmt.Errorf("%w: provider id=%d has no timezone configured", ErrInvalidResponse, providerID)
	}

	return &provider, nil
}
