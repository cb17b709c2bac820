package auth

import "context"

type bearerCtxKey struct{}

// ContextWithBearer stashes the raw bearer credential so downstream layers
// (the order-service mirror) can forward it without re-reading the request.
func ContextWithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerCtxKey{}, token)
}

// BearerFromContext returns the raw bearer credential, or empty when absent.
func BearerFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if token, ok := ctx.Value(bearerCtxKey{}).(string); ok {
		return token
	}
	return ""
}
