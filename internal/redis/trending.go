package redis

import (
	"context"
	"fmt"
	"strconv"
)

// PokemonViews is a custom Pokemon id with its accumulated view count
type PokemonViews struct {
	ID    int   `json:"id"`
	Views int64 `json:"views"`
}

const trendingKey = "trending:custom_pokemon"

// RecordView increments the view counter for a custom Pokemon
func (c *Client) RecordView(ctx context.Context, pokemonID int) error {
	return c.ZIncrBy(ctx, trendingKey, 1, strconv.Itoa(pokemonID)).Err()
}

// TopViewed returns the N most viewed custom Pokemon, highest first
func (c *Client) TopViewed(ctx context.Context, limit int64) ([]PokemonViews, error) {
	entries, err := c.ZRevRangeWithScores(ctx, trendingKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get top viewed pokemon: %w", err)
	}

	views := make([]PokemonViews, 0, len(entries))
	for _, entry := range entries {
		member, ok := entry.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		views = append(views, PokemonViews{ID: id, Views: int64(entry.Score)})
	}
	return views, nil
}

// ViewCount returns the view counter for a specific custom Pokemon
func (c *Client) ViewCount(ctx context.Context, pokemonID int) (int64, error) {
	score, err := c.ZScore(ctx, trendingKey, strconv.Itoa(pokemonID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get view count: %w", err)
	}
	return int64(score), nil
}

// RemovePokemon drops a custom Pokemon from the trending counters
func (c *Client) RemovePokemon(ctx context.Context, pokemonID int) error {
	if err := c.ZRem(ctx, trendingKey, strconv.Itoa(pokemonID)).Err(); err != nil {
		return fmt.Errorf("failed to remove pokemon from trending: %w", err)
	}
	return nil
}
