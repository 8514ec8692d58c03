package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/retrodex/api/internal/models"
)

// CreateUser inserts a new user, assigning a fresh UUID, and returns
// the stored row.
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	query := `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := db.QueryRowContext(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// GetUserByID fetches a user by its UUID
func (db *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return db.getUser(ctx, "id = $1", id)
}

// GetUserByEmail fetches a user by email
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.getUser(ctx, "email = $1", email)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, username, email, password_hash, is_admin, is_first_admin, created_at
		FROM users
		WHERE ` + where
	err := db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.IsFirstAdmin,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// ListUsers returns all users ordered by creation time
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, username, email, is_admin, is_first_admin, created_at
		FROM users
		ORDER BY created_at
	`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.IsAdmin,
			&user.IsFirstAdmin,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SetAdmin updates a user's administrator flag
func (db *DB) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	result, err := db.ExecContext(ctx, `UPDATE users SET is_admin = $2 WHERE id = $1`, id, isAdmin)
	if err != nil {
		return fmt.Errorf("failed to update admin flag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureFirstAdmin seeds the bootstrap administrator account if no user
// holds the first-admin flag yet. The flag is never cleared afterwards.
func (db *DB) EnsureFirstAdmin(ctx context.Context, username, email, passwordHash string) error {
	var existingID string
	err := db.QueryRowContext(ctx, `SELECT id FROM users WHERE is_first_admin`).Scan(&existingID)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check for first admin: %w", err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO users (id, username, email, password_hash, is_admin, is_first_admin)
		VALUES ($1, $2, $3, $4, TRUE, TRUE)
	`
	if _, err := db.ExecContext(ctx, query, id, username, email, passwordHash); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			// Another instance won the bootstrap race
			return nil
		}
		return fmt.Errorf("failed to seed first admin: %w", err)
	}

	log.Printf("[Database] First admin seeded: %s (ID: %s)", username, id)
	return nil
}
