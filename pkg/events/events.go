package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects published by the billing engine.
const (
	TopicOrderCreated   = "dinedash.orders.created"
	TopicOrderMerged    = "dinedash.orders.merged"
	TopicOrderStatus    = "dinedash.orders.status"
	TopicKitchenTicket  = "dinedash.kitchen.ticket"
	TopicFolioCharged   = "dinedash.folio.charged"
	TopicFolioSettled   = "dinedash.folio.settled"
	TopicPayrollPayout  = "dinedash.payroll.payout"
	TopicInventoryLow   = "dinedash.inventory.low"
	TopicBookingUpdated = "dinedash.bookings.updated"
)

// Publisher sends raw messages to a subject.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg []byte) error
	Close() error
}

// Event is the envelope every message is wrapped in.
type Event struct {
	Topic      string          `json:"topic"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// PublishJSON wraps payload in an Event and publishes it.
func PublishJSON(ctx context.Context, p Publisher, topic string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}
	msg, err := json.Marshal(Event{Topic: topic, OccurredAt: time.Now().UTC(), Payload: body})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", topic, err)
	}
	return p.Publish(ctx, topic, msg)
}

// NATSPublisher publishes over a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("dinedash-api"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.conn.Publish(topic, msg)
}

func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}

// NoopPublisher drops every message. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, []byte) error { return nil }

func (NoopPublisher) Close() error { return nil }

// NewPublisherFromConfig returns a NATS publisher for url, or a NoopPublisher
// when url is empty.
func NewPublisherFromConfig(url string) (Publisher, error) {
	if url == "" {
		return NoopPublisher{}, nil
	}
	return NewNATSPublisher(url)
}
