package handlers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/retrodex/api/internal/database"
	"github.com/retrodex/api/internal/models"
	"github.com/retrodex/api/internal/redis"
)

// fakeUserStore is an in-memory UserStore for handler tests
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (s *fakeUserStore) seed(user models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = &user
	return &user
}

func (s *fakeUserStore) CreateUser(_ context.Context, username, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == username || existing.Email == email {
			return nil, database.ErrDuplicate
		}
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeUserStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := []models.User{}
	for _, user := range s.users {
		users = append(users, *user)
	}
	return users, nil
}

func (s *fakeUserStore) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return database.ErrNotFound
	}
	user.IsAdmin = isAdmin
	return nil
}

// fakePokemonStore is an in-memory PokemonStore for handler tests
type fakePokemonStore struct {
	mu      sync.Mutex
	records map[int]*models.CustomPokemon
	nextID  int
}

func newFakePokemonStore() *fakePokemonStore {
	return &fakePokemonStore{
		records: make(map[int]*models.CustomPokemon),
		nextID:  models.CustomBaseID,
	}
}

func (s *fakePokemonStore) CreatePokemon(_ context.Context, p *models.CustomPokemon) (*models.CustomPokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records {
		if strings.EqualFold(existing.Name, p.Name) {
			return nil, database.ErrDuplicate
		}
	}
	copied := *p
	copied.ID = s.nextID
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	s.nextID++
	s.records[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (s *fakePokemonStore) GetPokemonByID(_ context.Context, id int) (*models.CustomPokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *fakePokemonStore) GetPokemonByName(_ context.Context, name string) (*models.CustomPokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records {
		if strings.EqualFold(record.Name, name) {
			copied := *record
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakePokemonStore) ListPokemon(_ context.Context) ([]models.CustomPokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := []models.CustomPokemon{}
	for _, record := range s.records {
		records = append(records, *record)
	}
	return records, nil
}

func (s *fakePokemonStore) ListPokemonByUser(_ context.Context, userID string) ([]models.CustomPokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := []models.CustomPokemon{}
	for _, record := range s.records {
		if record.CreatedBy == userID {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (s *fakePokemonStore) UpdateEvolutions(_ context.Context, id int, evolutions []string) (*models.CustomPokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	record.Evolutions = evolutions
	record.UpdatedAt = time.Now()
	copied := *record
	return &copied, nil
}

// fakeViewCounter records views in memory
type fakeViewCounter struct {
	mu    sync.Mutex
	views map[int]int64
}

func newFakeViewCounter() *fakeViewCounter {
	return &fakeViewCounter{views: make(map[int]int64)}
}

func (c *fakeViewCounter) RecordView(_ context.Context, pokemonID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[pokemonID]++
	return nil
}

func (c *fakeViewCounter) TopViewed(_ context.Context, limit int64) ([]redis.PokemonViews, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	top := []redis.PokemonViews{}
	for id, views := range c.views {
		top = append(top, redis.PokemonViews{ID: id, Views: views})
	}
	// Insertion-order tolerance is fine for these tests
	if int64(len(top)) > limit {
		top = top[:limit]
	}
	return top, nil
}
