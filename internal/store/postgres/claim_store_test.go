package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var claimColumns = []string{"id", "claimant_name", "village", "area", "status", "created_at", "updated_at"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestClaimStore_CreateClaim(t *testing.T) {
	mock := newMockPool(t)
	s := NewClaimStore(mock)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO claims`).
		WithArgs("Ramesh Kumar", "Bandhavgarh", 2.5, types.ClaimStatusGranted).
		WillReturnRows(pgxmock.NewRows(claimColumns).
			AddRow(int64(1), "Ramesh Kumar", "Bandhavgarh", 2.5, types.ClaimStatusGranted, now, now))

	claim, err := s.CreateClaim(context.Background(), types.ClaimCreate{
		ClaimantName: "Ramesh Kumar",
		Village:      "Bandhavgarh",
		Area:         2.5,
		Status:       types.ClaimStatusGranted,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), claim.ID)
	assert.Equal(t, "Ramesh Kumar", claim.ClaimantName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimStore_GetClaimNotFound(t *testing.T) {
	mock := newMockPool(t)
	s := NewClaimStore(mock)

	mock.ExpectQuery(`SELECT (.+) FROM claims`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetClaim(context.Background(), 99)

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimStore_GetClaim(t *testing.T) {
	mock := newMockPool(t)
	s := NewClaimStore(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM claims`).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(claimColumns).
			AddRow(int64(2), "Sunita Devi", "Kanha", 1.2, types.ClaimStatusPending, now, now))

	claim, err := s.GetClaim(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, "Kanha", claim.Village)
	assert.Equal(t, types.ClaimStatusPending, claim.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimStore_ListClaimsAll(t *testing.T) {
	mock := newMockPool(t)
	s := NewClaimStore(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM claims ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows(claimColumns).
			AddRow(int64(2), "Sunita Devi", "Kanha", 1.2, types.ClaimStatusPending, now, now).
			AddRow(int64(1), "Ramesh Kumar", "Bandhavgarh", 2.5, types.ClaimStatusGranted, now, now))

	claims, err := s.ListClaims(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, claims, 2)
	assert.Equal(t, int64(2), claims[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimStore_ListClaimsByStatus(t *testing.T) {
	mock := newMockPool(t)
	s := NewClaimStore(mock)
	now := time.Now()
	status := types.ClaimStatusGranted

	mock.ExpectQuery(`SELECT (.+) FROM claims WHERE status = \$1`).
		WithArgs(status).
		WillReturnRows(pgxmock.NewRows(claimColumns).
			AddRow(int64(1), "Ramesh Kumar", "Bandhavgarh", 2.5, status, now, now))

	claims, err := s.ListClaims(context.Background(), &status)

	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, status, claims[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimStore_ListClaimsEmptyIsNotNil(t *testing.T) {
	mock := newMockPool(t)
	s := NewClaimStore(mock)

	mock.ExpectQuery(`SELECT (.+) FROM claims`).
		WillReturnRows(pgxmock.NewRows(claimColumns))

	claims, err := s.ListClaims(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Empty(t, claims)
}
