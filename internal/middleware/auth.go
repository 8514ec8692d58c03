package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/retrodex/api/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserContextKey is the key for storing user claims in request context
	UserContextKey contextKey = "user"
	// TokenContextKey is the key for storing the raw bearer token, so the
	// logout handler can revoke the matching session
	TokenContextKey contextKey = "token"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RequireAuth is a middleware that validates bearer tokens
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Extract token from Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing authorization header")
			return
		}

		// Check if header has Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeAuthError(w, "Invalid authorization header format. Use: Bearer <token>")
			return
		}

		tokenString := parts[1]

		// Validate token
		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			writeAuthError(w, "Invalid or expired token")
			return
		}

		// Add claims and raw token to request context
		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		ctx = context.WithValue(ctx, TokenContextKey, tokenString)
		r = r.WithContext(ctx)

		// Call next handler
		next.ServeHTTP(w, r)
	}
}

// RequireAdmin rejects requests whose verified claims lack the admin flag.
// Must be layered inside RequireAuth.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetUserClaims(r)
		if !ok {
			writeAuthError(w, "Unauthorized")
			return
		}
		if !claims.IsAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Administrator access required"})
			return
		}
		next.ServeHTTP(w, r)
	}
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// GetUserClaims extracts user claims from request context
func GetUserClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(UserContextKey).(*auth.Claims)
	return claims, ok
}

// GetBearerToken extracts the raw bearer token from request context
func GetBearerToken(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(TokenContextKey).(string)
	return token, ok
}
