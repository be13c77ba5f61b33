package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrInvalidResponse is returned for unexpected upstream responses.
	ErrInvalidResponse = errors.New("notify: invalid response")

	// ErrInternal is returned for transport-level failures.
	ErrInternal = errors.New("notify: internal error")
)

// Logger is the logging surface the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client delivers confirmations through the external notification
// service. Failures are logged and swallowed by callers; a missed text
// never blocks a booking.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a notifier client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendConfirmation posts one confirmation message.
func (c *Client) SendConfirmation(ctx context.Context, confirmation *Confirmation) error {
	body, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("%w: failed to encode confirmation: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(payload))
	}
}

// MockClient logs confirmations instead of delivering them.
type MockClient struct {
	log Logger
}

// NewMockClient creates the mock-mode notifier.
func NewMockClient(log Logger) *MockClient {
	return &MockClient{log: log}
}

// SendConfirmation logs and succeeds.
func (c *MockClient) SendConfirmation(_ context.Context, confirmation *Confirmation) error {
	c.log.Info("notify (mock): %s", confirmation.Subject)
	return nil
}
