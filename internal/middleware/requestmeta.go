package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortcode/internal/handlers"
)

// RequestMeta is a middleware that adds client IP, user-agent and the
// addressed scheme and host to the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  extractClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Scheme:    extractScheme(ctx),
			Host:      extractHost(ctx),
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

func extractClientIP(ctx huma.Context) string {
	// X-Forwarded-For may carry a chain; the first entry is the client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()

	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return ip
}

func extractScheme(ctx huma.Context) string {
	if proto := ctx.Header("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(firstValue(proto)))
	}

	if ctx.TLS() != nil {
		return "https"
	}

	return "http"
}

func extractHost(ctx huma.Context) string {
	if host := ctx.Header("X-Forwarded-Host"); host != "" {
		return strings.TrimSpace(firstValue(host))
	}

	return ctx.Host()
}

func firstValue(header string) string {
	if idx := strings.Index(header, ","); idx != -1 {
		return header[:idx]
	}

	return header
}
