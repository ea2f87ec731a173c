package middleware

import (
	"context"
	"net/http"
	"strings"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// Authenticate rejects requests without a valid bearer credential and
// attaches the decoded claims to the request context.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if authHeader == "" || len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				api.Error(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				api.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyUser).(*auth.Claims)
	return claims, ok
}
