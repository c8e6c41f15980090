package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TokenStore struct {
	pool *pgxpool.Pool
}

func (s *TokenStore) Block(ctx context.Context, jti string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO token_blocklist (id, jti, created_at) VALUES ($1, $2, $3)`,
		uuid.New(), jti, time.Now())
	if err != nil {
		return fmt.Errorf("block token: %w", err)
	}
	return nil
}

func (s *TokenStore) IsBlocked(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM token_blocklist WHERE jti = $1)`, jti).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check token blocklist: %w", err)
	}
	return exists, nil
}
