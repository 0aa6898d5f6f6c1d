package postgres

import (
	"context"
	"encoding/json"

	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/types"
	"github.com/pkg/errors"
)

// SchemeStore implements store.SchemeStore using PostgreSQL. Eligibility
// rules are stored as a JSONB column so scheme definitions can evolve without
// schema migrations.
type SchemeStore struct {
	db DB
}

var _ store.SchemeStore = (*SchemeStore)(nil)

// NewSchemeStore creates a new SchemeStore instance.
func NewSchemeStore(db DB) *SchemeStore {
	return &SchemeStore{db: db}
}

// ListSchemes returns the full scheme catalog in id order.
func (s *SchemeStore) ListSchemes(ctx context.Context) ([]types.Scheme, error) {
	query := `
		SELECT id, scheme_name, description, rules, created_at
		FROM schemes
		ORDER BY id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list schemes")
	}
	defer rows.Close()

	schemes := make([]types.Scheme, 0)
	for rows.Next() {
		var (
			scheme   types.Scheme
			rawRules []byte
		)
		if err := rows.Scan(
			&scheme.ID,
			&scheme.SchemeName,
			&scheme.Description,
			&rawRules,
			&scheme.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan scheme row")
		}
		if err := json.Unmarshal(rawRules, &scheme.Rules); err != nil {
			return nil, errors.Wrapf(err, "malformed rules for scheme %d", scheme.ID)
		}
		schemes = append(schemes, scheme)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate scheme rows")
	}
	return schemes, nil
}
