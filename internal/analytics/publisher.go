package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortcode/internal/messaging"
)

// NewURLCreatedPublisher returns a typed publish function for URLCreatedEvent.
func NewURLCreatedPublisher(publisher message.Publisher) messaging.Publish[URLCreatedEvent] {
	return messaging.NewPublishFunc[URLCreatedEvent](publisher, TopicURLCreated)
}
