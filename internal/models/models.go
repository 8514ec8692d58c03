package models

import (
	"strings"
	"time"
)

// User represents a registered account
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	IsFirstAdmin bool      `json:"isFirstAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CustomPokemon represents a user-submitted Pokemon entry.
// Custom ids start at 1026, just above the official catalog range,
// so the two namespaces never collide.
type CustomPokemon struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Sprite     string    `json:"sprite,omitempty"`
	Types      []string  `json:"types"`
	Height     int       `json:"height"`
	Weight     int       `json:"weight"`
	FlavorText string    `json:"flavorText"`
	Evolutions []string  `json:"evolutions"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Types and evolutions are stored as comma-delimited strings in the
// database and deserialized into lists on every read.

// JoinList serializes a list into its stored comma-delimited form.
func JoinList(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return strings.Join(cleaned, ",")
}

// SplitList deserializes a stored comma-delimited string into a list.
// Blank segments are dropped; an empty value yields an empty list, not nil.
func SplitList(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
