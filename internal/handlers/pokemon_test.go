package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrodex/api/internal/auth"
	"github.com/retrodex/api/internal/models"
)

func seedPokemon(t *testing.T, store *fakePokemonStore, name string, types []string) *models.CustomPokemon {
	t.Helper()
	created, err := store.CreatePokemon(t.Context(), &models.CustomPokemon{
		Name:       name,
		Types:      types,
		Height:     10,
		Weight:     10,
		Evolutions: []string{},
		CreatedBy:  "creator-id",
	})
	require.NoError(t, err)
	return created
}

func TestPokemonCreate(t *testing.T) {
	store := newFakePokemonStore()
	h := NewPokemonHandler(store, nil)

	req := authedRequest(t, http.MethodPost, "/api/pokemon/custom", CreatePokemonRequest{
		Name:       "Sparkitty",
		Types:      []string{"Electric"},
		FlavorText: "A crackling kitten.",
	}, &auth.Claims{UserID: "admin-id", IsAdmin: true})

	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.CustomPokemon
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.GreaterOrEqual(t, got.ID, models.CustomBaseID, "custom ids start above the official range")
	assert.Equal(t, []string{"electric"}, got.Types, "types are stored lowercased")
	assert.Equal(t, 10, got.Height, "missing height falls back to the default")
	assert.Equal(t, 10, got.Weight, "missing weight falls back to the default")
	assert.Equal(t, []string{}, got.Evolutions)
	assert.Equal(t, "admin-id", got.CreatedBy)
}

func TestPokemonCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreatePokemonRequest
	}{
		{"missing name", CreatePokemonRequest{Types: []string{"fire"}}},
		{"bad name chars", CreatePokemonRequest{Name: "spark cat!", Types: []string{"fire"}}},
		{"no types", CreatePokemonRequest{Name: "sparkitty"}},
		{"three types", CreatePokemonRequest{Name: "sparkitty", Types: []string{"fire", "water", "grass"}}},
		{"unknown type", CreatePokemonRequest{Name: "sparkitty", Types: []string{"plasma"}}},
		{"duplicate types", CreatePokemonRequest{Name: "sparkitty", Types: []string{"fire", "fire"}}},
		{"negative height", CreatePokemonRequest{Name: "sparkitty", Types: []string{"fire"}, Height: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPokemonHandler(newFakePokemonStore(), nil)
			req := authedRequest(t, http.MethodPost, "/api/pokemon/custom", tt.req, &auth.Claims{UserID: "admin-id", IsAdmin: true})

			rec := httptest.NewRecorder()
			h.Create(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPokemonCreateDuplicateName(t *testing.T) {
	store := newFakePokemonStore()
	seedPokemon(t, store, "sparkitty", []string{"electric"})
	h := NewPokemonHandler(store, nil)

	req := authedRequest(t, http.MethodPost, "/api/pokemon/custom", CreatePokemonRequest{
		Name:  "Sparkitty",
		Types: []string{"electric"},
	}, &auth.Claims{UserID: "admin-id", IsAdmin: true})

	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Pokemon name already taken", decodeError(t, rec))
}

func TestPokemonGetByName(t *testing.T) {
	store := newFakePokemonStore()
	created := seedPokemon(t, store, "Sparkitty", []string{"electric"})
	h := NewPokemonHandler(store, nil)

	// Lookup is case-insensitive
	req := httptest.NewRequest(http.MethodGet, "/api/pokemon/custom/SPARKITTY", nil)
	req.SetPathValue("idOrName", "SPARKITTY")

	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.CustomPokemon
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)
}

func TestPokemonGetByIDRecordsView(t *testing.T) {
	store := newFakePokemonStore()
	views := newFakeViewCounter()
	created := seedPokemon(t, store, "sparkitty", []string{"electric"})
	h := NewPokemonHandler(store, views)

	req := httptest.NewRequest(http.MethodGet, "/api/pokemon/custom/1026", nil)
	req.SetPathValue("idOrName", "1026")

	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), views.views[created.ID])
}

func TestPokemonGetNotFound(t *testing.T) {
	h := NewPokemonHandler(newFakePokemonStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/pokemon/custom/missingno", nil)
	req.SetPathValue("idOrName", "missingno")

	rec := httptest.NewRecorder()
	h.Get(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPokemonByUser(t *testing.T) {
	store := newFakePokemonStore()
	seedPokemon(t, store, "sparkitty", []string{"electric"})
	seedPokemon(t, store, "glimmerpuff", []string{"fairy"})
	h := NewPokemonHandler(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/pokemon/custom/user/creator-id", nil)
	req.SetPathValue("userId", "creator-id")

	rec := httptest.NewRecorder()
	h.ByUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.CustomPokemon
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, 2)

	req = httptest.NewRequest(http.MethodGet, "/api/pokemon/custom/user/someone-else", nil)
	req.SetPathValue("userId", "someone-else")

	rec = httptest.NewRecorder()
	h.ByUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Empty(t, got)
}

func TestPokemonTrending(t *testing.T) {
	store := newFakePokemonStore()
	views := newFakeViewCounter()
	created := seedPokemon(t, store, "sparkitty", []string{"electric"})
	require.NoError(t, views.RecordView(t.Context(), created.ID))
	// A counter for a row that no longer exists must be skipped
	require.NoError(t, views.RecordView(t.Context(), 9999))
	h := NewPokemonHandler(store, views)

	rec := httptest.NewRecorder()
	h.Trending(rec, httptest.NewRequest(http.MethodGet, "/api/pokemon/custom/trending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.CustomPokemon
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
}

func TestPokemonTrendingWithoutCounter(t *testing.T) {
	h := NewPokemonHandler(newFakePokemonStore(), nil)

	rec := httptest.NewRecorder()
	h.Trending(rec, httptest.NewRequest(http.MethodGet, "/api/pokemon/custom/trending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.CustomPokemon
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Empty(t, got)
}

func TestPokemonUpdateEvolutions(t *testing.T) {
	store := newFakePokemonStore()
	created := seedPokemon(t, store, "sparkitty", []string{"electric"})
	h := NewPokemonHandler(store, nil)

	req := jsonRequest(t, http.MethodPut, "/api/pokemon/custom/sparkitty", UpdateEvolutionsRequest{
		Evolutions: []string{"voltlion", "glimmerpuff"},
	})
	req.SetPathValue("idOrName", "sparkitty")

	rec := httptest.NewRecorder()
	h.UpdateEvolutions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.CustomPokemon
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, []string{"voltlion", "glimmerpuff"}, got.Evolutions)
	assert.Equal(t, created.Name, got.Name, "only the evolutions list changes")
}

func TestPokemonUpdateEvolutionsNotFound(t *testing.T) {
	h := NewPokemonHandler(newFakePokemonStore(), nil)

	req := jsonRequest(t, http.MethodPut, "/api/pokemon/custom/ghost", UpdateEvolutionsRequest{
		Evolutions: []string{"voltlion"},
	})
	req.SetPathValue("idOrName", "ghost")

	rec := httptest.NewRecorder()
	h.UpdateEvolutions(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
