package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/retrodex/api/internal/database"
	"github.com/retrodex/api/internal/handlers"
	"github.com/retrodex/api/internal/middleware"
	redisClient "github.com/retrodex/api/internal/redis"
)

func main() {
	// Load .env for local development; env vars win in production
	if err := godotenv.Load(); err == nil {
		log.Println("[API] Loaded configuration from .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize database connection
	log.Println("[API] Initializing database connection...")
	db, err := database.NewConnection(database.LoadConfigFromEnv())
	if err != nil {
		log.Fatalf("[API] Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("[API] Failed to initialize schema: %v", err)
	}

	if err := seedFirstAdmin(db); err != nil {
		log.Fatalf("[API] Failed to seed first admin: %v", err)
	}

	// Redis is optional; sessions and trending degrade gracefully without it
	var sessions handlers.SessionStore
	var views handlers.ViewCounter
	rdb, err := redisClient.NewClient(redisClient.LoadConfigFromEnv())
	if err != nil {
		log.Printf("[API] Redis unavailable, continuing without sessions and trending: %v", err)
	} else {
		defer rdb.Close()
		sessions = rdb
		views = rdb
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, sessions)
	usersHandler := handlers.NewUsersHandler(db)
	pokemonHandler := handlers.NewPokemonHandler(db, views)

	// Setup HTTP routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}
		if rdb != nil {
			if count, err := rdb.GetActiveUsersCount(r.Context()); err == nil {
				status["activeSessions"] = count
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	})

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/auth/logout", middleware.RequireAuth(authHandler.Logout))

	// User admin routes
	mux.HandleFunc("GET /api/users", middleware.RequireAuth(middleware.RequireAdmin(usersHandler.List)))
	mux.HandleFunc("GET /api/users/{id}", middleware.RequireAuth(usersHandler.Get))
	mux.HandleFunc("PATCH /api/users/{id}/promote", middleware.RequireAuth(middleware.RequireAdmin(usersHandler.Promote)))
	mux.HandleFunc("PATCH /api/users/{id}/demote", middleware.RequireAuth(middleware.RequireAdmin(usersHandler.Demote)))

	// Custom Pokemon routes
	mux.HandleFunc("GET /api/pokemon/custom", pokemonHandler.List)
	mux.HandleFunc("GET /api/pokemon/custom/trending", pokemonHandler.Trending)
	mux.HandleFunc("GET /api/pokemon/custom/user/{userId}", pokemonHandler.ByUser)
	mux.HandleFunc("GET /api/pokemon/custom/{idOrName}", pokemonHandler.Get)
	mux.HandleFunc("POST /api/pokemon/custom", middleware.RequireAuth(middleware.RequireAdmin(pokemonHandler.Create)))
	mux.HandleFunc("PUT /api/pokemon/custom/{idOrName}", middleware.RequireAuth(middleware.RequireAdmin(pokemonHandler.UpdateEvolutions)))

	// CORS middleware
	handler := corsMiddleware(mux)

	// Start server
	log.Printf("[API] Starting server on port %s...", port)
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("[API] Server failed: %v", err)
	}
}

// seedFirstAdmin creates the bootstrap administrator account on first run
func seedFirstAdmin(db *database.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@pokedex.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-please"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.EnsureFirstAdmin(ctx, username, email, string(hash))
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
