package postgres

import (
	"context"

	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/types"
	"github.com/pkg/errors"
)

// RecommendationStore implements store.RecommendationStore using PostgreSQL.
type RecommendationStore struct {
	db DB
}

var _ store.RecommendationStore = (*RecommendationStore)(nil)

// NewRecommendationStore creates a new RecommendationStore instance.
func NewRecommendationStore(db DB) *RecommendationStore {
	return &RecommendationStore{db: db}
}

// SaveRecommendations persists one row per scored scheme and returns the
// stored records with their assigned ids.
func (s *RecommendationStore) SaveRecommendations(ctx context.Context, claimID int64, scored []types.ScoredScheme) ([]types.Recommendation, error) {
	query := `
		INSERT INTO recommendations (claim_id, scheme_id, score)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	saved := make([]types.Recommendation, 0, len(scored))
	for _, item := range scored {
		rec := types.Recommendation{
			ClaimID:    claimID,
			SchemeID:   item.SchemeID,
			SchemeName: item.SchemeName,
			Score:      item.Score,
		}
		err := s.db.QueryRow(ctx, query, claimID, item.SchemeID, item.Score).
			Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to save recommendation for scheme %d", item.SchemeID)
		}
		saved = append(saved, rec)
	}
	return saved, nil
}

// ListRecommendations returns the stored recommendations for a claim, newest
// first, with scheme names denormalized via join.
func (s *RecommendationStore) ListRecommendations(ctx context.Context, claimID int64) ([]types.Recommendation, error) {
	query := `
		SELECT r.id, r.claim_id, r.scheme_id, s.scheme_name, r.score, r.created_at
		FROM recommendations r
		JOIN schemes s ON s.id = r.scheme_id
		WHERE r.claim_id = $1
		ORDER BY r.created_at DESC, r.score DESC`

	rows, err := s.db.Query(ctx, query, claimID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recommendations")
	}
	defer rows.Close()

	recs := make([]types.Recommendation, 0)
	for rows.Next() {
		var rec types.Recommendation
		if err := rows.Scan(
			&rec.ID,
			&rec.ClaimID,
			&rec.SchemeID,
			&rec.SchemeName,
			&rec.Score,
			&rec.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan recommendation row")
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate recommendation rows")
	}
	return recs, nil
}
