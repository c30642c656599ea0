// Package events publishes checklist lifecycle events to an optional message bus.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/yegors/atcopilot/internal/checklist"
	"github.com/yegors/atcopilot/pkg/logger"
)

// TypeChecklistGenerated is the event type emitted after a checklist is built
const TypeChecklistGenerated = "checklist.generated"

// ChecklistGenerated is the payload published for every generated checklist
type ChecklistGenerated struct {
	Type        string               `json:"type"`
	ID          string               `json:"id"`
	Callsign    string               `json:"callsign"`
	Departure   string               `json:"departure"`
	Arrival     string               `json:"arrival"`
	DistanceNM  float64              `json:"distance_nm"`
	GeneratedAt time.Time            `json:"generated_at"`
	Checklist   *checklist.Checklist `json:"checklist"`
}

// Publisher delivers events
type Publisher interface {
	Publish(ctx context.Context, evt *ChecklistGenerated) error
	Close() error
}

// Noop discards every event
type Noop struct{}

// Publish implements Publisher
func (Noop) Publish(context.Context, *ChecklistGenerated) error { return nil }

// Close implements Publisher
func (Noop) Close() error { return nil }

// conn is the subset of *nats.Conn the publisher uses
type conn interface {
	Publish(subj string, data []byte) error
	Close()
}

// NATSPublisher publishes JSON events to a NATS subject
type NATSPublisher struct {
	conn    conn
	subject string
	logger  *logger.Logger
}

// NewNATSPublisher connects to the NATS server at url
func NewNATSPublisher(url, subject string, log *logger.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("atcopilot"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	log.Named("events").Info("Connected to NATS",
		logger.String("url", url),
		logger.String("subject", subject))

	return newNATSPublisher(nc, subject, log), nil
}

func newNATSPublisher(c conn, subject string, log *logger.Logger) *NATSPublisher {
	return &NATSPublisher{
		conn:    c,
		subject: subject,
		logger:  log.Named("events"),
	}
}

// Publish implements Publisher
func (p *NATSPublisher) Publish(ctx context.Context, evt *ChecklistGenerated) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if evt.Type == "" {
		evt.Type = TypeChecklistGenerated
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published event",
		logger.String("type", evt.Type),
		logger.String("id", evt.ID),
		logger.Int("bytes", len(data)))
	return nil
}

// Close implements Publisher
func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}
