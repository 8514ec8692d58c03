package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/retrodex/api/internal/models"
	"github.com/retrodex/api/internal/redis"
)

// UserStore is the persistence surface the auth and user handlers need.
// Implemented by *database.DB; tests substitute in-memory fakes.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
}

// PokemonStore is the persistence surface the custom-Pokemon handlers need
type PokemonStore interface {
	CreatePokemon(ctx context.Context, p *models.CustomPokemon) (*models.CustomPokemon, error)
	GetPokemonByID(ctx context.Context, id int) (*models.CustomPokemon, error)
	GetPokemonByName(ctx context.Context, name string) (*models.CustomPokemon, error)
	ListPokemon(ctx context.Context) ([]models.CustomPokemon, error)
	ListPokemonByUser(ctx context.Context, userID string) ([]models.CustomPokemon, error)
	UpdateEvolutions(ctx context.Context, id int, evolutions []string) (*models.CustomPokemon, error)
}

// SessionStore tracks logged-in sessions. Implemented by *redis.Client;
// a nil store disables session tracking without breaking auth.
type SessionStore interface {
	SetSession(ctx context.Context, token string, session *redis.SessionData, ttl time.Duration) error
	DeleteSession(ctx context.Context, token string) error
}

// ViewCounter tracks per-Pokemon view counts for the trending endpoint
type ViewCounter interface {
	RecordView(ctx context.Context, pokemonID int) error
	TopViewed(ctx context.Context, limit int64) ([]redis.PokemonViews, error)
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
