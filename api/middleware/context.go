package middleware

import "context"

type ctxKeyType string

const (
	ctxUserID     ctxKeyType = "user_id"
	ctxSessionKey ctxKeyType = "session_key"
	ctxRole       ctxKeyType = "role"
)

// WithSessionKey seeds the cart namespace the handlers read. The auth
// middleware calls it for real traffic; tests call it directly.
func WithSessionKey(ctx context.Context, sessionKey string) context.Context {
	return context.WithValue(ctx, ctxSessionKey, sessionKey)
}

// SessionKeyFromContext returns the cart namespace seeded by the auth
// middleware, or empty when unauthenticated.
func SessionKeyFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(ctxSessionKey).(string); ok {
		return value
	}
	return ""
}

// UserIDFromContext returns the authenticated user id, or empty.
func UserIDFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(ctxUserID).(string); ok {
		return value
	}
	return ""
}

// RoleFromContext returns the actor role claim, or empty.
func RoleFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(ctxRole).(string); ok {
		return value
	}
	return ""
}
