package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Metadata keys set on every published message.
const (
	MetadataPublishedAt = "published_at"
	MetadataTopic       = "topic"
)

// Publish sends one typed event. Implementations must be safe for concurrent use.
type Publish[T any] func(ctx context.Context, event *T) error

type publishConfig struct {
	now func() time.Time
}

// PublishOption configures NewPublishFunc.
type PublishOption func(*publishConfig)

// WithPublishClock overrides the clock used for MetadataPublishedAt.
func WithPublishClock(now func() time.Time) PublishOption {
	return func(c *publishConfig) { c.now = now }
}

// NewPublishFunc returns a Publish that JSON-encodes events onto topic.
func NewPublishFunc[T any](publisher message.Publisher, topic string, opts ...PublishOption) Publish[T] {
	cfg := publishConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx context.Context, event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", topic, err)
		}

		msg := message.NewMessage(uuid.NewString(), payload)
		msg.SetContext(ctx)
		msg.Metadata.Set(MetadataTopic, topic)
		msg.Metadata.Set(MetadataPublishedAt, cfg.now().UTC().Format(time.RFC3339Nano))

		if err := publisher.Publish(topic, msg); err != nil {
			return fmt.Errorf("publish to %s: %w", topic, err)
		}

		return nil
	}
}

// NopPublish returns a Publish that discards events. Used when event
// publishing is disabled.
func NopPublish[T any]() Publish[T] {
	return func(context.Context, *T) error { return nil }
}

// PublisherGroup owns the publisher behind every typed Publish and closes it
// on shutdown.
type PublisherGroup struct {
	publisher message.Publisher
}

func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
