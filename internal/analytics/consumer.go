package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortcode/internal/messaging"
	"go.uber.org/zap"
)

// NewURLCreatedConsumer returns a consumer persisting URLCreatedEvent to store.
func NewURLCreatedConsumer(
	subscriber message.Subscriber, store Store, logger *zap.Logger,
) *messaging.Consumer[URLCreatedEvent] {
	return messaging.NewConsumer(subscriber, TopicURLCreated, store.SaveURLCreated, logger)
}
