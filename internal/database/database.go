package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Sentinel errors mapped from driver-level failures so handlers never
// inspect SQL error strings themselves.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Config holds database configuration
type Config struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoadConfigFromEnv loads database configuration from environment variables
func LoadConfigFromEnv() *Config {
	return &Config{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnv("DB_PORT", "5432"),
		User:            getEnv("DB_USER", "pokedex"),
		Password:        getEnv("DB_PASSWORD", "pokedex_password"),
		DBName:          getEnv("DB_NAME", "pokedex_db"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
	}
}

// NewConnection creates a new database connection with the provided configuration
func NewConnection(config *Config) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("[Database] Connected to %s:%s/%s", config.Host, config.Port, config.DBName)
	log.Printf("[Database] Pool config: MaxOpen=%d, MaxIdle=%d", config.MaxOpenConns, config.MaxIdleConns)

	return &DB{db}, nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[Database] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("[Database] Invalid duration value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// InitSchema creates database tables if they don't exist
func (db *DB) InitSchema() error {
	schema := `
	-- Users table
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(30) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		is_first_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Custom Pokemon ids live above the official catalog range (1..1025)
	CREATE SEQUENCE IF NOT EXISTS custom_pokemon_id_seq START WITH 1026 MINVALUE 1026;

	-- Custom Pokemon table; types and evolutions are comma-delimited strings
	CREATE TABLE IF NOT EXISTS custom_pokemon (
		id INTEGER PRIMARY KEY DEFAULT nextval('custom_pokemon_id_seq'),
		name VARCHAR(50) UNIQUE NOT NULL,
		sprite TEXT,
		types VARCHAR(100) NOT NULL DEFAULT '',
		height INTEGER NOT NULL DEFAULT 10,
		weight INTEGER NOT NULL DEFAULT 10,
		flavor_text TEXT NOT NULL DEFAULT '',
		evolutions TEXT NOT NULL DEFAULT '',
		created_by UUID REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_custom_pokemon_name_lower ON custom_pokemon(LOWER(name));
	CREATE INDEX IF NOT EXISTS idx_custom_pokemon_created_by ON custom_pokemon(created_by);

	-- At most one user may ever hold the first-admin flag
	CREATE UNIQUE INDEX IF NOT EXISTS idx_users_first_admin ON users(is_first_admin) WHERE is_first_admin;
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Initialize triggers and functions
	if err := db.initTriggers(); err != nil {
		return fmt.Errorf("failed to initialize triggers: %w", err)
	}

	log.Println("[Database] Schema initialized with indexes and triggers")
	return nil
}

// initTriggers creates database triggers for automation
func (db *DB) initTriggers() error {
	triggers := `
	-- Function to update custom pokemon timestamp
	CREATE OR REPLACE FUNCTION update_custom_pokemon_timestamp()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = CURRENT_TIMESTAMP;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;

	-- Trigger to auto-update custom pokemon timestamp
	DROP TRIGGER IF EXISTS trg_update_custom_pokemon_timestamp ON custom_pokemon;
	CREATE TRIGGER trg_update_custom_pokemon_timestamp
		BEFORE UPDATE ON custom_pokemon
		FOR EACH ROW
		EXECUTE FUNCTION update_custom_pokemon_timestamp();
	`

	_, err := db.Exec(triggers)
	return err
}
