// Package middleware carries the bearer-token gate every /tasks request
// passes through. Handlers never trust a user id from the request body; the
// id always comes out of token verification here.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"todo-api-v2/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (int, error)
}

// UserID extracts the authenticated user id placed in ctx by Auth.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// WithUserID returns a context carrying an authenticated user id, the
// write-side counterpart of UserID.
func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// Auth returns middleware that requires a valid "Authorization: Bearer"
// header and binds the verified user id to the request context.
func Auth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Not authenticated")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "Not authenticated")
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					unauthorized(w, "Token has expired")
					return
				}
				unauthorized(w, "Invalid authentication credentials")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"detail":"` + detail + `"}`))
}
