package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/forgeline/storefront/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// NoopBus satisfies Publisher when the broker is unreachable. Inquiry
// intake must not depend on NATS being up.
type NoopBus struct{}

func (NoopBus) Publish(context.Context, string, interface{}) error { return nil }
func (NoopBus) Close() error                                       { return nil }

// Event subjects
const (
	InquiryCreated       = "inquiry.created"
	InquiryStatusUpdated = "inquiry.status_updated"
	InquiryDeleted       = "inquiry.deleted"
)

// Event payloads
type InquiryCreatedEvent struct {
	InquiryID        int64     `json:"inquiry_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Subject          string    `json:"subject"`
	SavedToPrimary   bool      `json:"saved_to_primary"`
	SavedToSecondary bool      `json:"saved_to_secondary"`
	EmailSent        bool      `json:"email_sent"`
	CreatedAt        time.Time `json:"created_at"`
}

type InquiryStatusUpdatedEvent struct {
	InquiryID int64     `json:"inquiry_id"`
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InquiryDeletedEvent struct {
	InquiryID int64     `json:"inquiry_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
