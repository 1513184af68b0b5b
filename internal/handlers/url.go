package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortcode/internal/analytics"
	"github.com/serroba/shortcode/internal/messaging"
	"github.com/serroba/shortcode/internal/shortener"
	"go.uber.org/zap"
)

// Shortener creates short-code mappings.
type Shortener interface {
	Shorten(ctx context.Context, longURL, hostURL string) (*shortener.Mapping, error)
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	shortener         Shortener
	baseURL           string
	publishURLCreated messaging.Publish[analytics.URLCreatedEvent]
	logger            *zap.Logger
}

// NewURLHandler creates a new URL handler. When baseURL is empty the host URL
// is taken from the incoming request.
func NewURLHandler(
	svc Shortener,
	baseURL string,
	publishURLCreated messaging.Publish[analytics.URLCreatedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		shortener:         svc,
		baseURL:           strings.TrimSuffix(baseURL, "/"),
		publishURLCreated: publishURLCreated,
		logger:            logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	meta := RequestMetaFromContext(ctx)

	hostURL := h.baseURL
	if hostURL == "" {
		hostURL = meta.HostURL()
	}

	mapping, err := h.shortener.Shorten(ctx, req.Body.URL, hostURL)
	if err != nil {
		return nil, h.mapError(err, req.Body.URL)
	}

	event := &analytics.URLCreatedEvent{
		ID:          mapping.ID.String(),
		Code:        string(mapping.ShortCode),
		OriginalURL: mapping.OriginalURL,
		ShortURL:    mapping.ShortURL,
		CreatedAt:   mapping.CreatedAt,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	}

	if err := h.publishURLCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish analytics event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	resp := &CreateShortURLResponse{}
	resp.Location = mapping.ShortURL
	resp.Body.Code = string(mapping.ShortCode)
	resp.Body.ShortURL = mapping.ShortURL
	resp.Body.OriginalURL = mapping.OriginalURL

	return resp, nil
}

func (h *URLHandler) mapError(err error, rawURL string) error {
	var vErr *shortener.ValidationError
	if errors.As(err, &vErr) {
		return huma.Error400BadRequest(vErr.Message, &huma.ErrorDetail{
			Message:  vErr.Message,
			Location: "body." + vErr.Field,
		})
	}

	if errors.Is(err, shortener.ErrExhausted) {
		h.logger.Error("short code space exhausted, increase the code length", zap.Error(err))

		return huma.Error503ServiceUnavailable("no free short code available")
	}

	h.logger.Error("failed to shorten url",
		zap.String("url", rawURL),
		zap.Error(err),
	)

	return huma.Error500InternalServerError("failed to save url")
}
