// Package postgres implements store.Store on a pgx connection pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub-app/backend/internal/store"
)

// Store bundles the per-domain repositories over one pool.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres store: pool is nil")
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Users() store.UserStore   { return &UserStore{pool: s.pool} }
func (s *Store) Events() store.EventStore { return &EventStore{pool: s.pool} }
func (s *Store) Tokens() store.TokenStore { return &TokenStore{pool: s.pool} }

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}
