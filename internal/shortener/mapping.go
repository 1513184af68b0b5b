package shortener

import (
	"time"

	"github.com/google/uuid"
)

// Code represents a short URL code.
type Code string

// Mapping is the persisted association between a long URL and its short code.
// It is immutable once created.
type Mapping struct {
	ID          uuid.UUID
	OriginalURL string
	ShortCode   Code
	ShortURL    string // hostURL + "/" + ShortCode, denormalized
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComposeShortURL joins the host URL and code the same way for every mapping.
func ComposeShortURL(hostURL string, code Code) string {
	return hostURL + "/" + string(code)
}
