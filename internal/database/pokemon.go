package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/retrodex/api/internal/models"
)

const pokemonColumns = `id, name, COALESCE(sprite, ''), types, height, weight, flavor_text, evolutions, COALESCE(created_by::text, ''), created_at, updated_at`

func scanPokemon(row interface{ Scan(...any) error }) (*models.CustomPokemon, error) {
	var p models.CustomPokemon
	var types, evolutions string
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Sprite,
		&types,
		&p.Height,
		&p.Weight,
		&p.FlavorText,
		&evolutions,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Types = models.SplitList(types)
	p.Evolutions = models.SplitList(evolutions)
	return &p, nil
}

// CreatePokemon inserts a new custom Pokemon. The id comes from the
// database sequence, so it is always >= 1026 and monotonically increasing.
func (db *DB) CreatePokemon(ctx context.Context, p *models.CustomPokemon) (*models.CustomPokemon, error) {
	query := `
		INSERT INTO custom_pokemon (name, sprite, types, height, weight, flavor_text, evolutions, created_by)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8::uuid)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRowContext(ctx, query,
		p.Name,
		p.Sprite,
		models.JoinList(p.Types),
		p.Height,
		p.Weight,
		p.FlavorText,
		models.JoinList(p.Evolutions),
		p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert pokemon: %w", err)
	}
	return p, nil
}

// GetPokemonByID fetches a custom Pokemon by numeric id
func (db *DB) GetPokemonByID(ctx context.Context, id int) (*models.CustomPokemon, error) {
	query := `SELECT ` + pokemonColumns + ` FROM custom_pokemon WHERE id = $1`
	p, err := scanPokemon(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon: %w", err)
	}
	return p, nil
}

// GetPokemonByName fetches a custom Pokemon by case-insensitive name
func (db *DB) GetPokemonByName(ctx context.Context, name string) (*models.CustomPokemon, error) {
	query := `SELECT ` + pokemonColumns + ` FROM custom_pokemon WHERE LOWER(name) = LOWER($1)`
	p, err := scanPokemon(db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon: %w", err)
	}
	return p, nil
}

// ListPokemon returns all custom Pokemon ordered by id
func (db *DB) ListPokemon(ctx context.Context) ([]models.CustomPokemon, error) {
	query := `SELECT ` + pokemonColumns + ` FROM custom_pokemon ORDER BY id`
	return db.listPokemon(ctx, query)
}

// ListPokemonByUser returns all custom Pokemon created by the given user
func (db *DB) ListPokemonByUser(ctx context.Context, userID string) ([]models.CustomPokemon, error) {
	query := `SELECT ` + pokemonColumns + ` FROM custom_pokemon WHERE created_by = $1::uuid ORDER BY id`
	return db.listPokemon(ctx, query, userID)
}

func (db *DB) listPokemon(ctx context.Context, query string, args ...any) ([]models.CustomPokemon, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}
	defer rows.Close()

	pokemon := []models.CustomPokemon{}
	for rows.Next() {
		p, err := scanPokemon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pokemon: %w", err)
		}
		pokemon = append(pokemon, *p)
	}
	return pokemon, rows.Err()
}

// UpdateEvolutions replaces the evolutions list of a custom Pokemon.
// Only the evolutions field is writable after creation; updated_at is
// maintained by a trigger.
func (db *DB) UpdateEvolutions(ctx context.Context, id int, evolutions []string) (*models.CustomPokemon, error) {
	query := `
		UPDATE custom_pokemon SET evolutions = $2
		WHERE id = $1
		RETURNING ` + pokemonColumns
	p, err := scanPokemon(db.QueryRowContext(ctx, query, id, models.JoinList(evolutions)))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update evolutions: %w", err)
	}
	return p, nil
}
