package handlers

import "context"

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata captured at the boundary.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Scheme    string
	Host      string
}

// HostURL returns the scheme and host the request was addressed to, or ""
// when either is unknown.
func (m RequestMeta) HostURL() string {
	if m.Scheme == "" || m.Host == "" {
		return ""
	}

	return m.Scheme + "://" + m.Host
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}
