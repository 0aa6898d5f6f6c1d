// Package postgres implements the store interfaces on PostgreSQL via pgx.
package postgres

import (
	"context"

	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the stores use. pgxmock satisfies it in
// tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// Store bundles the PostgreSQL-backed stores behind the store.Store interface.
type Store struct {
	pool            *pgxpool.Pool
	claims          *ClaimStore
	schemes         *SchemeStore
	recommendations *RecommendationStore
}

var _ store.Store = (*Store)(nil)

// NewStore creates a Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:            pool,
		claims:          NewClaimStore(pool),
		schemes:         NewSchemeStore(pool),
		recommendations: NewRecommendationStore(pool),
	}
}

func (s *Store) Claims() store.ClaimStore                   { return s.claims }
func (s *Store) Schemes() store.SchemeStore                 { return s.schemes }
func (s *Store) Recommendations() store.RecommendationStore { return s.recommendations }

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}
