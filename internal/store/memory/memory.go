// Package memory implements store.Store in process memory. It mirrors the
// postgres semantics (including the absence of a users→events cascade) and
// backs the handler tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/eventhub-app/backend/internal/models"
	"github.com/eventhub-app/backend/internal/store"
)

type Store struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]models.User
	events  map[uuid.UUID]models.Event
	blocked map[string]struct{}
}

func New() *Store {
	return &Store{
		users:   make(map[uuid.UUID]models.User),
		events:  make(map[uuid.UUID]models.Event),
		blocked: make(map[string]struct{}),
	}
}

func (s *Store) Users() store.UserStore   { return (*userStore)(s) }
func (s *Store) Events() store.EventStore { return (*eventStore)(s) }
func (s *Store) Tokens() store.TokenStore { return (*tokenStore)(s) }

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close()                         {}

type userStore Store

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return store.ErrConflict
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *userStore) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return store.ErrConflict
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *userStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

type eventStore Store

func (s *eventStore) Create(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = *event
	return nil
}

func (s *eventStore) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (s *eventStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := []models.Event{}
	for _, e := range s.events {
		if e.UserID == userID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (s *eventStore) Update(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return store.ErrNotFound
	}
	s.events[event.ID] = *event
	return nil
}

func (s *eventStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

type tokenStore Store

func (s *tokenStore) Block(ctx context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked[jti] = struct{}{}
	return nil
}

func (s *tokenStore) IsBlocked(ctx context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocked[jti]
	return ok, nil
}
