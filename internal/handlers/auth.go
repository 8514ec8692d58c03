package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/retrodex/api/internal/auth"
	"github.com/retrodex/api/internal/database"
	"github.com/retrodex/api/internal/middleware"
	"github.com/retrodex/api/internal/models"
	"github.com/retrodex/api/internal/redis"

	"encoding/json"
)

type AuthHandler struct {
	users    UserStore
	sessions SessionStore
}

func NewAuthHandler(users UserStore, sessions SessionStore) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate input
	if err := validateRegisterRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Auth] Failed to hash password: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username, req.Email, string(hashedPassword))
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			writeError(w, http.StatusConflict, "Username or email already exists")
			return
		}
		log.Printf("[Auth] Failed to insert user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		log.Printf("[Auth] Failed to generate token: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.recordSession(r.Context(), token, user)

	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: user})

	log.Printf("[Auth] User registered successfully: %s (ID: %s)", user.Username, user.ID)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("[Auth] Failed to fetch user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		log.Printf("[Auth] Failed to generate token: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.recordSession(r.Context(), token, user)

	// Clear password hash before sending
	user.PasswordHash = ""

	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})

	log.Printf("[Auth] User logged in successfully: %s (ID: %s)", user.Username, user.ID)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}
		log.Printf("[Auth] Failed to fetch user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user.PasswordHash = ""
	writeJSON(w, http.StatusOK, user)
}

// Logout revokes the session for the presented token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetBearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if h.sessions != nil {
		if err := h.sessions.DeleteSession(r.Context(), token); err != nil {
			log.Printf("[Auth] Failed to delete session: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// recordSession stores a session record best-effort; auth works without it
func (h *AuthHandler) recordSession(ctx context.Context, token string, user *models.User) {
	if h.sessions == nil {
		return
	}
	now := time.Now()
	session := &redis.SessionData{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(auth.TokenDuration),
	}
	if err := h.sessions.SetSession(ctx, token, session, auth.TokenDuration); err != nil {
		log.Printf("[Auth] Failed to record session: %v", err)
	}
}

// validateRegisterRequest validates the registration request
func validateRegisterRequest(req *RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" {
		return &ValidationError{Field: "username", Message: "Username is required"}
	}
	if len(req.Username) < 3 || len(req.Username) > 30 {
		return &ValidationError{Field: "username", Message: "Username must be between 3 and 30 characters"}
	}
	if req.Email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if !strings.Contains(req.Email, "@") || strings.ContainsAny(req.Email, " \t") {
		return &ValidationError{Field: "email", Message: "Invalid email format"}
	}
	if req.Password == "" {
		return &ValidationError{Field: "password", Message: "Password is required"}
	}
	if len(req.Password) < 6 {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	return nil
}
