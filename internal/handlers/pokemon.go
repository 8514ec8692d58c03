package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/retrodex/api/internal/database"
	"github.com/retrodex/api/internal/middleware"
	"github.com/retrodex/api/internal/models"
)

type PokemonHandler struct {
	pokemon PokemonStore
	views   ViewCounter
}

func NewPokemonHandler(pokemon PokemonStore, views ViewCounter) *PokemonHandler {
	return &PokemonHandler{pokemon: pokemon, views: views}
}

// CreatePokemonRequest represents the request body for creating a custom Pokemon
type CreatePokemonRequest struct {
	Name       string   `json:"name"`
	Sprite     string   `json:"sprite"`
	Types      []string `json:"types"`
	Height     int      `json:"height"`
	Weight     int      `json:"weight"`
	FlavorText string   `json:"flavorText"`
	Evolutions []string `json:"evolutions"`
}

// UpdateEvolutionsRequest updates the evolutions list; no other field is
// writable after creation.
type UpdateEvolutionsRequest struct {
	Evolutions []string `json:"evolutions"`
}

// List returns all custom Pokemon
func (h *PokemonHandler) List(w http.ResponseWriter, r *http.Request) {
	pokemon, err := h.pokemon.ListPokemon(r.Context())
	if err != nil {
		log.Printf("[Pokemon] Failed to list pokemon: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list pokemon")
		return
	}
	writeJSON(w, http.StatusOK, pokemon)
}

// Get returns a single custom Pokemon by numeric id or case-insensitive
// name, and bumps its view counter.
func (h *PokemonHandler) Get(w http.ResponseWriter, r *http.Request) {
	idOrName := r.PathValue("idOrName")

	pokemon, err := h.lookup(r, idOrName)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Pokemon not found")
			return
		}
		log.Printf("[Pokemon] Failed to fetch pokemon: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch pokemon")
		return
	}

	if h.views != nil {
		if err := h.views.RecordView(r.Context(), pokemon.ID); err != nil {
			log.Printf("[Pokemon] Failed to record view: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, pokemon)
}

// ByUser returns all custom Pokemon created by the given user
func (h *PokemonHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	pokemon, err := h.pokemon.ListPokemonByUser(r.Context(), userID)
	if err != nil {
		log.Printf("[Pokemon] Failed to list pokemon for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to list pokemon")
		return
	}
	writeJSON(w, http.StatusOK, pokemon)
}

// Trending returns the most viewed custom Pokemon
func (h *PokemonHandler) Trending(w http.ResponseWriter, r *http.Request) {
	if h.views == nil {
		writeJSON(w, http.StatusOK, []models.CustomPokemon{})
		return
	}

	top, err := h.views.TopViewed(r.Context(), 10)
	if err != nil {
		log.Printf("[Pokemon] Failed to get trending pokemon: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get trending pokemon")
		return
	}

	trending := []models.CustomPokemon{}
	for _, entry := range top {
		pokemon, err := h.pokemon.GetPokemonByID(r.Context(), entry.ID)
		if err != nil {
			// Counter may outlive the row; skip stale entries
			continue
		}
		trending = append(trending, *pokemon)
	}
	writeJSON(w, http.StatusOK, trending)
}

// Create adds a new custom Pokemon. Admin only.
func (h *PokemonHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreatePokemonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validateCreatePokemonRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pokemon := &models.CustomPokemon{
		Name:       req.Name,
		Sprite:     req.Sprite,
		Types:      req.Types,
		Height:     req.Height,
		Weight:     req.Weight,
		FlavorText: req.FlavorText,
		Evolutions: req.Evolutions,
		CreatedBy:  claims.UserID,
	}
	if pokemon.Height <= 0 {
		pokemon.Height = 10
	}
	if pokemon.Weight <= 0 {
		pokemon.Weight = 10
	}
	if pokemon.Evolutions == nil {
		pokemon.Evolutions = []string{}
	}

	created, err := h.pokemon.CreatePokemon(r.Context(), pokemon)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			writeError(w, http.StatusConflict, "Pokemon name already taken")
			return
		}
		log.Printf("[Pokemon] Failed to create pokemon: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create pokemon")
		return
	}

	writeJSON(w, http.StatusCreated, created)

	log.Printf("[Pokemon] Custom pokemon created: %s (ID: %d) by user %s", created.Name, created.ID, claims.UserID)
}

// UpdateEvolutions replaces a custom Pokemon's evolutions list. Admin only.
func (h *PokemonHandler) UpdateEvolutions(w http.ResponseWriter, r *http.Request) {
	idOrName := r.PathValue("idOrName")

	var req UpdateEvolutionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	existing, err := h.lookup(r, idOrName)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Pokemon not found")
			return
		}
		log.Printf("[Pokemon] Failed to fetch pokemon: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch pokemon")
		return
	}

	updated, err := h.pokemon.UpdateEvolutions(r.Context(), existing.ID, req.Evolutions)
	if err != nil {
		log.Printf("[Pokemon] Failed to update evolutions: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update evolutions")
		return
	}

	writeJSON(w, http.StatusOK, updated)

	log.Printf("[Pokemon] Evolutions updated for %s (ID: %d)", updated.Name, updated.ID)
}

// lookup resolves an idOrName path segment against the store
func (h *PokemonHandler) lookup(r *http.Request, idOrName string) (*models.CustomPokemon, error) {
	if id, err := strconv.Atoi(idOrName); err == nil {
		return h.pokemon.GetPokemonByID(r.Context(), id)
	}
	return h.pokemon.GetPokemonByName(r.Context(), idOrName)
}

// validateCreatePokemonRequest validates a custom Pokemon submission
func validateCreatePokemonRequest(req *CreatePokemonRequest) error {
	req.Name = strings.TrimSpace(req.Name)

	if req.Name == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	if len(req.Name) > 50 {
		return &ValidationError{Field: "name", Message: "Name must not exceed 50 characters"}
	}
	for _, char := range req.Name {
		if !isValidNameChar(char) {
			return &ValidationError{Field: "name", Message: "Name contains invalid characters. Only letters, numbers, and hyphens are allowed"}
		}
	}

	if len(req.Types) < 1 || len(req.Types) > 2 {
		return &ValidationError{Field: "types", Message: "Pokemon must have 1 or 2 types"}
	}
	seen := map[string]bool{}
	for i, t := range req.Types {
		t = strings.ToLower(strings.TrimSpace(t))
		req.Types[i] = t
		if !models.IsValidType(t) {
			return &ValidationError{Field: "types", Message: fmt.Sprintf("Unknown type: %s", t)}
		}
		if seen[t] {
			return &ValidationError{Field: "types", Message: "Duplicate types are not allowed"}
		}
		seen[t] = true
	}

	if req.Height < 0 || req.Weight < 0 {
		return &ValidationError{Field: "height", Message: "Height and weight must not be negative"}
	}

	return nil
}

// isValidNameChar checks if a character is valid for Pokemon names
func isValidNameChar(char rune) bool {
	return (char >= 'a' && char <= 'z') ||
		(char >= 'A' && char <= 'Z') ||
		(char >= '0' && char <= '9') ||
		char == '-'
}
