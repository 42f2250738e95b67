package core

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	ctxKeyOrigin    contextKey = "origin"
	ctxKeyIPAddress contextKey = "ip"
)

// ContextWithOrigin records which surface issued the operation ("web", "api", "tui").
func ContextWithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, ctxKeyOrigin, origin)
}

// ContextWithIPAddress adds the client IP for change logging.
func ContextWithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyIPAddress, ip)
}

// OriginFromContext extracts the surface name from context.
func OriginFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyOrigin).(string); ok {
		return v
	}
	return ""
}

// IPAddressFromContext extracts the client IP from context.
func IPAddressFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyIPAddress).(string); ok {
		return v
	}
	return ""
}

// changeAttrs returns the log attributes identifying who made a change.
func changeAttrs(ctx context.Context) []any {
	var attrs []any
	if o := OriginFromContext(ctx); o != "" {
		attrs = append(attrs, slog.String("origin", o))
	}
	if ip := IPAddressFromContext(ctx); ip != "" {
		attrs = append(attrs, slog.String("ip", ip))
	}
	return attrs
}
