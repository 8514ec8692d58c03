package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/retrodex/api/internal/database"
	"github.com/retrodex/api/internal/middleware"
)

type UsersHandler struct {
	users UserStore
}

func NewUsersHandler(users UserStore) *UsersHandler {
	return &UsersHandler{users: users}
}

// List returns all users. Admin only (enforced by middleware).
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		log.Printf("[Users] Failed to list users: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get returns a single user. Callers may fetch themselves; fetching
// anyone else requires the admin flag.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("id")
	if id != claims.UserID && !claims.IsAdmin {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[Users] Failed to fetch user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	user.PasswordHash = ""
	writeJSON(w, http.StatusOK, user)
}

// Promote grants the admin role to a user. Admin only.
func (h *UsersHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[Users] Failed to fetch user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	if user.IsAdmin {
		writeError(w, http.StatusConflict, "User is already an administrator")
		return
	}

	if err := h.users.SetAdmin(r.Context(), id, true); err != nil {
		log.Printf("[Users] Failed to promote user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to promote user")
		return
	}

	user.IsAdmin = true
	user.PasswordHash = ""
	writeJSON(w, http.StatusOK, user)

	log.Printf("[Users] User promoted to admin: %s (ID: %s)", user.Username, user.ID)
}

// Demote revokes the admin role. Admin only. The first admin can never
// be demoted, regardless of who asks.
func (h *UsersHandler) Demote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[Users] Failed to fetch user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	if user.IsFirstAdmin {
		writeError(w, http.StatusForbidden, "The first administrator cannot be demoted")
		return
	}
	if !user.IsAdmin {
		writeError(w, http.StatusConflict, "User is not an administrator")
		return
	}

	if err := h.users.SetAdmin(r.Context(), id, false); err != nil {
		log.Printf("[Users] Failed to demote user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to demote user")
		return
	}

	user.IsAdmin = false
	user.PasswordHash = ""
	writeJSON(w, http.StatusOK, user)

	log.Printf("[Users] User demoted: %s (ID: %s)", user.Username, user.ID)
}
