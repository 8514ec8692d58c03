package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/retrodex/api/internal/auth"
	"github.com/retrodex/api/internal/middleware"
	"github.com/retrodex/api/internal/models"
)

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authedRequest(t *testing.T, method, target string, body any, claims *auth.Claims) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = jsonRequest(t, method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func TestRegisterThenLogin(t *testing.T) {
	store := newFakeUserStore()
	h := NewAuthHandler(store, nil)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: "ash",
		Email:    "ash@example.com",
		Password: "pass123",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	var registered AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "ash", registered.User.Username)
	assert.False(t, registered.User.IsAdmin, "fresh accounts must not be admins")

	rec = httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "ash@example.com",
		Password: "pass123",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	var loggedIn AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&loggedIn))
	assert.NotEmpty(t, loggedIn.Token)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	claims, err := auth.ValidateToken(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing username", RegisterRequest{Email: "a@b.c", Password: "secret"}},
		{"short username", RegisterRequest{Username: "ab", Email: "a@b.c", Password: "secret"}},
		{"missing email", RegisterRequest{Username: "ash", Password: "secret"}},
		{"bad email", RegisterRequest{Username: "ash", Email: "not-an-email", Password: "secret"}},
		{"email with spaces", RegisterRequest{Username: "ash", Email: "a b@c.d", Password: "secret"}},
		{"missing password", RegisterRequest{Username: "ash", Email: "a@b.c"}},
		{"short password", RegisterRequest{Username: "ash", Email: "a@b.c", Password: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(newFakeUserStore(), nil)
			rec := httptest.NewRecorder()
			h.Register(rec, jsonRequest(t, http.MethodPost, "/api/auth/register", tt.req))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec))
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	store := newFakeUserStore()
	store.seed(models.User{Username: "ash", Email: "ash@example.com"})
	h := NewAuthHandler(store, nil)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: "ash",
		Email:    "other@example.com",
		Password: "pass123",
	}))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username or email already exists", decodeError(t, rec))
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	store.seed(models.User{Username: "ash", Email: "ash@example.com", PasswordHash: string(hash)})
	h := NewAuthHandler(store, nil)

	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "ash@example.com",
		Password: "wrong",
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeError(t, rec))
}

func TestLoginUnknownEmail(t *testing.T) {
	h := NewAuthHandler(newFakeUserStore(), nil)

	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	}))

	// Same message as a wrong password so the endpoint does not leak
	// which emails are registered
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeError(t, rec))
}

func TestMe(t *testing.T) {
	store := newFakeUserStore()
	user := store.seed(models.User{Username: "ash", Email: "ash@example.com", PasswordHash: "hash"})
	h := NewAuthHandler(store, nil)

	rec := httptest.NewRecorder()
	h.Me(rec, authedRequest(t, http.MethodGet, "/api/auth/me", nil, &auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, user.ID, got.ID)
	assert.NotContains(t, rec.Body.String(), "hash", "password hash must never be serialized")
}

func TestMeUnknownUser(t *testing.T) {
	h := NewAuthHandler(newFakeUserStore(), nil)

	rec := httptest.NewRecorder()
	h.Me(rec, authedRequest(t, http.MethodGet, "/api/auth/me", nil, &auth.Claims{
		UserID: "deleted-user",
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
