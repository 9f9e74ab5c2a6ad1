package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// SessionValidator validates admin session tokens.
type SessionValidator interface {
	ValidateToken(raw string) (*SessionClaims, error)
}

// SessionClaims are the claims the middleware cares about.
type SessionClaims struct {
	Email       string
	DisplayName string
}

type contextKeyOperatorEmail struct{}

// ContextKeyOperatorEmail is exported for use in handlers.
var ContextKeyOperatorEmail = contextKeyOperatorEmail{}

// GetOperatorEmail retrieves the authenticated operator's email from the context.
func GetOperatorEmail(ctx context.Context) string {
	email, ok := ctx.Value(ContextKeyOperatorEmail).(string)
	if !ok {
		return ""
	}
	return email
}

// RequireAuth rejects requests without a valid bearer session token.
func RequireAuth(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w)
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err.Error(),
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w)
				return
			}
			ctx = context.WithValue(ctx, ContextKeyOperatorEmail, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"Invalid or expired session token"}`))
}
