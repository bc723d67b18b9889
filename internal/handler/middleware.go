package handler

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/port"
)

type contextKey string

const userIDKey contextKey = "userID"

// AuthMiddleware validates Bearer tokens and injects the authenticated
// user id into the request context. A nil verifier disables the check,
// used in local runs without an identity provider.
func AuthMiddleware(verifier port.TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("auth: invalid token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id from context.
func UserIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// bearerToken extracts the token from the Authorization header, or ""
// when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// authorizeUser rejects requests whose authenticated subject differs
// from the {userId} path parameter. When auth is disabled the context
// carries no user id and every request passes.
func authorizeUser(w http.ResponseWriter, r *http.Request, userID string) bool {
	authUser := UserIDFromContext(r.Context())
	if authUser != "" && authUser != userID {
		writeError(w, http.StatusForbidden, "token does not match requested user")
		return false
	}
	return true
}
