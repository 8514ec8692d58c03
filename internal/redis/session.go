package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SessionData represents a logged-in user session stored in Redis
type SessionData struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SetSession stores a user session in Redis with TTL
func (c *Client) SetSession(ctx context.Context, token string, session *SessionData, ttl time.Duration) error {
	sessionKey := fmt.Sprintf("session:%s", token)

	// Serialize session data to JSON
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	// Store session with expiration
	if err := c.Set(ctx, sessionKey, sessionJSON, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	// Add user to active users set
	if err := c.SAdd(ctx, "active_users", session.UserID).Err(); err != nil {
		return fmt.Errorf("failed to add to active users: %w", err)
	}

	return nil
}

// GetSession retrieves a user session from Redis
func (c *Client) GetSession(ctx context.Context, token string) (*SessionData, error) {
	sessionKey := fmt.Sprintf("session:%s", token)

	sessionJSON, err := c.Get(ctx, sessionKey).Result()
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

// DeleteSession removes a user session from Redis (for logout)
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	sessionKey := fmt.Sprintf("session:%s", token)

	// Get session data first to update the active users set
	session, err := c.GetSession(ctx, token)
	if err == nil {
		c.SRem(ctx, "active_users", session.UserID)
	}

	if err := c.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// InvalidateUserSessions removes all sessions for a specific user
func (c *Client) InvalidateUserSessions(ctx context.Context, userID string) error {
	iter := c.Scan(ctx, 0, "session:*", 100).Iterator()

	for iter.Next(ctx) {
		sessionKey := iter.Val()

		sessionJSON, err := c.Get(ctx, sessionKey).Result()
		if err != nil {
			continue
		}

		var session SessionData
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			continue
		}

		if session.UserID == userID {
			c.Del(ctx, sessionKey)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan sessions: %w", err)
	}

	c.SRem(ctx, "active_users", userID)

	return nil
}

// GetActiveUsersCount returns the total number of active users
func (c *Client) GetActiveUsersCount(ctx context.Context) (int64, error) {
	count, err := c.SCard(ctx, "active_users").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get active users count: %w", err)
	}
	return count, nil
}
