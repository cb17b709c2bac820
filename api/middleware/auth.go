package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/harvestlink-app/harvestlink-backend/api/responses"
	pkgAuth "github.com/harvestlink-app/harvestlink-backend/pkg/auth"
	"github.com/harvestlink-app/harvestlink-backend/pkg/config"
	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// session namespace plus the raw credential the sync adapter forwards.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = WithSessionKey(ctx, claims.SessionKey())
			ctx = context.WithValue(ctx, ctxRole, claims.Role)
			ctx = pkgAuth.ContextWithBearer(ctx, token)

			if logg != nil {
				fields := map[string]any{
					"user_id":     claims.UserID.String(),
					"session_key": claims.SessionKey(),
				}
				if claims.Role != "" {
					fields["actor_role"] = claims.Role
				}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
