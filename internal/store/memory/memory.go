// Package memory implements the store interfaces in process memory. It is
// the fallback backend when no database is reachable and the default for
// local development, seeded with a small demo dataset.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fra-atlas/fra-atlas-backend/internal/recommend"
	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/types"
)

// Store is an in-memory store.Store implementation. Safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	claims     map[int64]types.Claim
	schemes    []types.Scheme
	recs       map[int64][]types.Recommendation
	nextClaim  int64
	nextRec    int64
	claimOrder []int64
}

var _ store.Store = (*Store)(nil)

// NewStore creates an empty in-memory store with the built-in scheme catalog.
func NewStore() *Store {
	schemes := recommend.DefaultCatalog()
	now := time.Now().UTC()
	for i := range schemes {
		schemes[i].CreatedAt = now
	}
	return &Store{
		claims:    make(map[int64]types.Claim),
		schemes:   schemes,
		recs:      make(map[int64][]types.Recommendation),
		nextClaim: 1,
		nextRec:   1,
	}
}

// NewSeededStore creates an in-memory store preloaded with demo claims so
// the map and recommendation endpoints have data out of the box.
func NewSeededStore() *Store {
	s := NewStore()
	ctx := context.Background()
	demo := []types.ClaimCreate{
		{ClaimantName: "Ramesh Kumar", Village: "Bandhavgarh", Area: 2.5, Status: types.ClaimStatusGranted},
		{ClaimantName: "Sunita Devi", Village: "Kanha", Area: 1.2, Status: types.ClaimStatusPending},
		{ClaimantName: "Mohan Singh", Village: "Pench", Area: 0.8, Status: types.ClaimStatusRejected},
	}
	for _, c := range demo {
		// Cannot fail for the in-memory backend.
		_, _ = s.CreateClaim(ctx, c)
	}
	return s
}

func (s *Store) Claims() store.ClaimStore                   { return s }
func (s *Store) Schemes() store.SchemeStore                 { return s }
func (s *Store) Recommendations() store.RecommendationStore { return s }

// Ping always succeeds; the backend is the process itself.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() {}

// CreateClaim assigns the next id and stores the claim.
func (s *Store) CreateClaim(ctx context.Context, claim types.ClaimCreate) (*types.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := types.Claim{
		ID:           s.nextClaim,
		ClaimantName: claim.ClaimantName,
		Village:      claim.Village,
		Area:         claim.Area,
		Status:       claim.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.claims[stored.ID] = stored
	s.claimOrder = append(s.claimOrder, stored.ID)
	s.nextClaim++
	return &stored, nil
}

// GetClaim returns store.ErrNotFound for unknown ids.
func (s *Store) GetClaim(ctx context.Context, id int64) (*types.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &claim, nil
}

// ListClaims returns claims newest first, optionally filtered by status.
func (s *Store) ListClaims(ctx context.Context, status *types.ClaimStatus) ([]types.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claims := make([]types.Claim, 0, len(s.claimOrder))
	// Insertion order is ascending by id; walk it backwards for newest first.
	for i := len(s.claimOrder) - 1; i >= 0; i-- {
		claim := s.claims[s.claimOrder[i]]
		if status != nil && claim.Status != *status {
			continue
		}
		claims = append(claims, claim)
	}
	return claims, nil
}

// ListSchemes returns a copy of the catalog in id order.
func (s *Store) ListSchemes(ctx context.Context) ([]types.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schemes := make([]types.Scheme, len(s.schemes))
	copy(schemes, s.schemes)
	return schemes, nil
}

// SaveRecommendations stores one record per scored scheme.
func (s *Store) SaveRecommendations(ctx context.Context, claimID int64, scored []types.ScoredScheme) ([]types.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	saved := make([]types.Recommendation, 0, len(scored))
	for _, item := range scored {
		rec := types.Recommendation{
			ID:         s.nextRec,
			ClaimID:    claimID,
			SchemeID:   item.SchemeID,
			SchemeName: item.SchemeName,
			Score:      item.Score,
			CreatedAt:  now,
		}
		s.nextRec++
		s.recs[claimID] = append(s.recs[claimID], rec)
		saved = append(saved, rec)
	}
	return saved, nil
}

// ListRecommendations returns stored recommendations newest first, ties
// broken by descending score.
func (s *Store) ListRecommendations(ctx context.Context, claimID int64) ([]types.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.recs[claimID]
	recs := make([]types.Recommendation, len(stored))
	copy(recs, stored)
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].Score > recs[j].Score
	})
	return recs, nil
}
