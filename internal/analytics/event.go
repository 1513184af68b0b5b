package analytics

import "time"

// TopicURLCreated is the topic URLCreatedEvent is published on.
const TopicURLCreated = "url.created"

// URLCreatedEvent represents an event emitted when a URL is shortened.
type URLCreatedEvent struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	OriginalURL string    `json:"originalUrl"`
	ShortURL    string    `json:"shortUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
}
