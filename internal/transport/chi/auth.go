package chi

import (
	"context"
	"net/http"
	"strings"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// devUserHeader resolves the requesting user when authentication is disabled.
const devUserHeader = "X-User-ID"

type userKey struct{}

// ContextWithUser stores the authenticated user id in the context.
func ContextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext extracts the authenticated user id, "" when absent.
func UserFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userKey{}).(string); ok {
		return id
	}
	return ""
}

// BearerAuthMiddleware returns a middleware that resolves the requesting user
// from a static bearer token. tokens maps token to user id. With no tokens
// configured, authentication is disabled and the user is taken from the
// X-User-ID header instead.
func BearerAuthMiddleware(tokens map[string]string) func(http.Handler) http.Handler {
	valid := make(map[string]string, len(tokens))
	for token, userID := range tokens {
		if token != "" && userID != "" {
			valid[token] = userID
		}
	}

	return func(next http.Handler) http.Handler {
		if len(valid) == 0 {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userID := r.Header.Get(devUserHeader); userID != "" {
					r = r.WithContext(ContextWithUser(r.Context(), userID))
				}
				next.ServeHTTP(w, r)
			})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					codeUnauthenticated, "authorization header must use Bearer scheme")
				return
			}

			userID, ok := valid[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, codeUnauthenticated, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), userID)))
		})
	}
}
