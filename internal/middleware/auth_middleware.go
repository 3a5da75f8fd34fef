package middleware

import (
	"context"
	"net/http"
	"strings"

	"notekeep-server/internal/repository"
	"notekeep-server/pkg/jwt"
	"notekeep-server/pkg/response"
)

type contextKey string

// UserIDKey holds the authenticated user's id in the request context. It is
// the single source of truth for who is acting; nothing downstream
// re-derives identity from the token.
const UserIDKey contextKey = "userID"

// AuthMiddleware extracts and verifies the bearer token, then resolves the
// user so a valid token for a since-removed account is still rejected.
func AuthMiddleware(jwtSecret string, userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwt.ValidateToken(parts[1], jwtSecret)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			user, err := userRepo.FindByID(claims.UserID)
			if err != nil {
				response.Unauthorized(w, "Authentication failed")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the authenticated user id set by AuthMiddleware, or ""
// on an unauthenticated request.
func GetUserID(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
