package calendar

import (
	"context"

	"github.com/google/uuid"
)

// MockClient is the no-op calendar used when no calendar service is
// configured. It hands out synthetic event refs so the rest of the flow
// is exercised unchanged.
type MockClient struct {
	log Logger
}

// NewMockClient creates the mock-mode calendar.
func NewMockClient(log Logger) *MockClient {
	return &MockClient{log: log}
}

// CreateEvent returns a synthetic event reference.
func (c *MockClient) CreateEvent(_ context.Context, event *Event) (*EventRef, error) {
	ref := &EventRef{ID: "mock-event-" + uuid.NewString()}
	c.log.Info("calendar (mock): created event %s (%s)", ref.ID, event.Summary)
	return ref, nil
}

// UpdateEvent logs and succeeds.
func (c *MockClient) UpdateEvent(_ context.Context, eventID string, _ *Event) error {
	c.log.Info("calendar (mock): updated event %s", eventID)
	return nil
}

// DeleteEvent logs and succeeds.
func (c *MockClient) DeleteEvent(_ context.Context, eventID string) error {
	c.log.Info("calendar (mock): deleted event %s", eventID)
	return nil
}
