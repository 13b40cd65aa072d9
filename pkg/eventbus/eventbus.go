package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/farepilot/farepilot/pkg/logger"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"
)

// Subjects for fare comparison events.
const (
	SubjectCompareCompleted = "compare.completed"
	SubjectOfferSelected    = "compare.offer.selected"
)

// Event is the envelope for all events published through the bus.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// NewEvent creates a new event with a unique ID and current timestamp.
func NewEvent(eventType, source string, data interface{}) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal event data: %w", err)
	}
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}, nil
}

// Config holds NATS connection settings.
type Config struct {
	URL        string
	Name       string // client connection name
	StreamName string // JetStream stream name
}

// DefaultConfig returns sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		URL:        nats.DefaultURL,
		Name:       "farepilot",
		StreamName: "FAREPILOT",
	}
}

// Bus wraps a NATS JetStream connection for publishing comparison events.
type Bus struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	cfg    Config
	source string
}

// New connects to NATS and ensures the JetStream stream exists.
func New(cfg Config, source string) (*Bus, error) {
	if cfg.StreamName == "" {
		cfg.StreamName = "FAREPILOT"
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{"compare.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   24 * time.Hour,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}

	return &Bus{conn: nc, js: js, cfg: cfg, source: source}, nil
}

// Publish marshals data into an event envelope and publishes it.
func (b *Bus) Publish(ctx context.Context, subject string, data interface{}) error {
	event, err := NewEvent(subject, b.source, data)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if _, err := b.js.Publish(ctx, subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	logger.Debug("published event",
		zap.String("subject", subject),
		zap.String("event_id", event.ID),
	)
	return nil
}

// Close drains the underlying NATS connection.
func (b *Bus) Close() {
	if b.conn != nil {
		if err := b.conn.Drain(); err != nil {
			logger.Warn("failed to drain nats connection", zap.Error(err))
		}
	}
}
