// Package store defines the persistence interfaces for claims, schemes, and
// recommendations. Implementations live in the postgres and memory
// subpackages.
package store

import (
	"context"

	"github.com/fra-atlas/fra-atlas-backend/types"
)

// ClaimStore handles claim persistence.
type ClaimStore interface {
	CreateClaim(ctx context.Context, claim types.ClaimCreate) (*types.Claim, error)
	GetClaim(ctx context.Context, id int64) (*types.Claim, error)
	ListClaims(ctx context.Context, status *types.ClaimStatus) ([]types.Claim, error)
}

// SchemeStore serves the scheme catalog.
type SchemeStore interface {
	ListSchemes(ctx context.Context) ([]types.Scheme, error)
}

// RecommendationStore persists scoring results per claim.
type RecommendationStore interface {
	SaveRecommendations(ctx context.Context, claimID int64, scored []types.ScoredScheme) ([]types.Recommendation, error)
	ListRecommendations(ctx context.Context, claimID int64) ([]types.Recommendation, error)
}

// Store provides a unified interface for all data operations.
type Store interface {
	Claims() ClaimStore
	Schemes() SchemeStore
	Recommendations() RecommendationStore

	// Ping reports backend reachability for health checks.
	Ping(ctx context.Context) error
	Close()
}
