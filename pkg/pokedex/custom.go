package pokedex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CustomClient talks to the local custom-store backend.
type CustomClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewCustomClient creates a custom-store client. The token may be empty for
// read-only use and set later after login.
func NewCustomClient(baseURL, token string) *CustomClient {
	return &CustomClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token attached to authenticated requests.
func (c *CustomClient) SetToken(token string) {
	c.token = token
}

// UserInfo is the backend's user shape.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AuthResult is the backend's response to register and login.
type AuthResult struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// CreatePokemonRequest is the payload for creating a custom Pokemon.
type CreatePokemonRequest struct {
	Name       string   `json:"name"`
	Sprite     string   `json:"sprite,omitempty"`
	Types      []string `json:"types"`
	Height     int      `json:"height,omitempty"`
	Weight     int      `json:"weight,omitempty"`
	FlavorText string   `json:"flavorText,omitempty"`
	Evolutions []string `json:"evolutions,omitempty"`
}

// Lookup fetches a single custom Pokemon by numeric id or name and
// normalizes it.
func (c *CustomClient) Lookup(ctx context.Context, query string) (*Record, error) {
	var raw customPayload
	if err := c.get(ctx, "/api/pokemon/custom/"+url.PathEscape(query), &raw); err != nil {
		return nil, fmt.Errorf("custom lookup %q: %w", query, err)
	}
	return normalizeCustom(&raw), nil
}

// List fetches all custom Pokemon.
func (c *CustomClient) List(ctx context.Context) ([]*Record, error) {
	var raws []customPayload
	if err := c.get(ctx, "/api/pokemon/custom", &raws); err != nil {
		return nil, fmt.Errorf("custom list: %w", err)
	}
	return normalizeAll(raws), nil
}

// ListByUser fetches the custom Pokemon created by a user.
func (c *CustomClient) ListByUser(ctx context.Context, userID string) ([]*Record, error) {
	var raws []customPayload
	if err := c.get(ctx, "/api/pokemon/custom/user/"+url.PathEscape(userID), &raws); err != nil {
		return nil, fmt.Errorf("custom list by user: %w", err)
	}
	return normalizeAll(raws), nil
}

// Trending fetches the most viewed custom Pokemon.
func (c *CustomClient) Trending(ctx context.Context) ([]*Record, error) {
	var raws []customPayload
	if err := c.get(ctx, "/api/pokemon/custom/trending", &raws); err != nil {
		return nil, fmt.Errorf("custom trending: %w", err)
	}
	return normalizeAll(raws), nil
}

// Create submits a new custom Pokemon. Requires an admin bearer token.
func (c *CustomClient) Create(ctx context.Context, req CreatePokemonRequest) (*Record, error) {
	var raw customPayload
	if err := c.doRequest(ctx, http.MethodPost, "/api/pokemon/custom", req, &raw); err != nil {
		return nil, fmt.Errorf("custom create: %w", err)
	}
	return normalizeCustom(&raw), nil
}

// UpdateEvolutions replaces a custom Pokemon's evolutions list. Requires an
// admin bearer token; no other field is updatable.
func (c *CustomClient) UpdateEvolutions(ctx context.Context, idOrName string, evolutions []string) (*Record, error) {
	var raw customPayload
	body := map[string][]string{"evolutions": evolutions}
	if err := c.doRequest(ctx, http.MethodPut, "/api/pokemon/custom/"+url.PathEscape(idOrName), body, &raw); err != nil {
		return nil, fmt.Errorf("custom update evolutions: %w", err)
	}
	return normalizeCustom(&raw), nil
}

// Register creates a new account and returns the issued token.
func (c *CustomClient) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	var result AuthResult
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", body, &result); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &result, nil
}

// Login authenticates with email and password and returns the issued token.
func (c *CustomClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &result, nil
}

// Me returns the profile behind the current bearer token.
func (c *CustomClient) Me(ctx context.Context) (*UserInfo, error) {
	var user UserInfo
	if err := c.get(ctx, "/api/auth/me", &user); err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return &user, nil
}

func normalizeAll(raws []customPayload) []*Record {
	records := make([]*Record, 0, len(raws))
	for i := range raws {
		records = append(records, normalizeCustom(&raws[i]))
	}
	return records
}

func (c *CustomClient) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *CustomClient) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			message = errBody.Error
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
