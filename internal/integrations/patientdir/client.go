package patientdir

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
	ErrInvalidResponse = errors.New("patientdir: invalid response")

	// ErrInternal is returned for transport-level failures.
	ErrInternal = errors.New("patientdir: internal error")
)

// Logger is the logging surface the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Patient is the longitudinal record reference returned by the
// directory. The scheduling engine passes the ID through unmodified.
type Patient struct {
	ID string `json:"id"`
}

type getOrCreateRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Client talks to the patient directory service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a patient directory client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetOrCreatePatient resolves or creates the longitudinal record for a
// patient. Only Schedule consumes this, and its failure never blocks
// the booking.
func (c *Client) GetOrCreatePatient(ctx context.Context, name string, phone, email *string) (*Patient, error) {
	body, err := json.Marshal(getOrCreateRequest{Name: name, Phone: phone, Email: email})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/patients/get-or-create", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
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
	case http.StatusOK, http.StatusCreated:
	default:
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(payload))
	}

	var patient Patient
	if err := json.NewDecoder(resp.Body).Decode(&patient); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return &patient, nil
}

// MockClient resolves every patient to an empty record reference.
type MockClient struct {
	log Logger
}

// NewMockClient creates the mock-mode directory.
func NewMockClient(log Logger) *MockClient {
	return &MockClient{log: log}
}

// GetOrCreatePatient logs and returns no record link.
func (c *MockClient) GetOrCreatePatient(_ context.Context, name string, _, _ *string) (*Patient, error) {
	c.log.Info("patientdir (mock): get-or-create for %s", name)
	return &Patient{}, nil
}
