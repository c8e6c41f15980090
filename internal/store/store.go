package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eventhub-app/backend/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique constraint (username/email)
	// would be violated.
	ErrConflict = errors.New("record already exists")
)

// Store groups data access by domain. A single Store is constructed at boot
// and handed to every handler.
type Store interface {
	Users() UserStore
	Events() EventStore
	Tokens() TokenStore

	Ping(ctx context.Context) error
	Close()
}

// UserStore owns User records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.User, error)
}

// EventStore owns Event records.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	Get(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenStore owns the token blocklist.
type TokenStore interface {
	Block(ctx context.Context, jti string) error
	IsBlocked(ctx context.Context, jti string) (bool, error)
}
