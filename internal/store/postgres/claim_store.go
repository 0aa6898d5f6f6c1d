package postgres

import (
	"context"

	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// ClaimStore implements store.ClaimStore using PostgreSQL.
type ClaimStore struct {
	db DB
}

var _ store.ClaimStore = (*ClaimStore)(nil)

// NewClaimStore creates a new ClaimStore instance.
func NewClaimStore(db DB) *ClaimStore {
	return &ClaimStore{db: db}
}

// CreateClaim inserts a claim and returns the stored record.
func (s *ClaimStore) CreateClaim(ctx context.Context, claim types.ClaimCreate) (*types.Claim, error) {
	query := `
		INSERT INTO claims (claimant_name, village, area, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, claimant_name, village, area, status, created_at, updated_at`

	stored := &types.Claim{}
	err := s.db.QueryRow(ctx, query,
		claim.ClaimantName,
		claim.Village,
		claim.Area,
		claim.Status,
	).Scan(
		&stored.ID,
		&stored.ClaimantName,
		&stored.Village,
		&stored.Area,
		&stored.Status,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create claim")
	}
	return stored, nil
}

// GetClaim retrieves a claim by its ID. Returns store.ErrNotFound when no row
// matches.
func (s *ClaimStore) GetClaim(ctx context.Context, id int64) (*types.Claim, error) {
	query := `
		SELECT id, claimant_name, village, area, status, created_at, updated_at
		FROM claims
		WHERE id = $1`

	claim := &types.Claim{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&claim.ID,
		&claim.ClaimantName,
		&claim.Village,
		&claim.Area,
		&claim.Status,
		&claim.CreatedAt,
		&claim.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get claim")
	}
	return claim, nil
}

// ListClaims returns claims newest first, optionally filtered by status.
func (s *ClaimStore) ListClaims(ctx context.Context, status *types.ClaimStatus) ([]types.Claim, error) {
	query := `
		SELECT id, claimant_name, village, area, status, created_at, updated_at
		FROM claims`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list claims")
	}
	defer rows.Close()

	claims := make([]types.Claim, 0)
	for rows.Next() {
		var claim types.Claim
		if err := rows.Scan(
			&claim.ID,
			&claim.ClaimantName,
			&claim.Village,
			&claim.Area,
			&claim.Status,
			&claim.CreatedAt,
			&claim.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan claim row")
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate claim rows")
	}
	return claims, nil
}
