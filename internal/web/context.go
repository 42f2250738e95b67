package web

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/JonMunkholm/inventory/internal/core"
)

// Origins recorded on change log lines.
const (
	originWeb = "web"
	originAPI = "api"
)

// WithRequestMetadata adds origin and client IP to context for change logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	origin := originWeb
	if strings.HasPrefix(r.URL.Path, "/api/") {
		origin = originAPI
	}
	ctx = core.ContextWithOrigin(ctx, origin)
	ctx = core.ContextWithIPAddress(ctx, clientIP(r))
	return ctx
}

// clientIP returns the request's IP without the port. RemoteAddr has already
// been rewritten by TrustedRealIP when a trusted proxy forwarded the request.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
