// internal/candidates/postgres_test.go
package candidates

import (
	"context"
	"testing"
	"time"

	"guardmatch/internal/common/errors"
	"guardmatch/internal/common/logger"
	"guardmatch/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var guardColumns = []string{
	"id", "name", "guard_type", "postal_code",
	"latitude", "longitude",
	"licence_status", "licence_expiry",
	"is_available", "certifications",
}

func newPostgresTest(t *testing.T) (*PostgresSource, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresSource(db, logger.NewNoOpLogger()), mock
}

var shiftDate = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

// ==========================
// Fetch Tests
// ==========================

func TestPostgresSource_FetchCandidates(t *testing.T) {
	source, mock := newPostgresTest(t)

	expiry := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(guardColumns).
		AddRow("guard-1", "Ada Okafor", "door-supervisor", "SW1A 1AA",
			51.501, -0.1416, "valid", expiry, true, []byte(`["first-aid","cctv"]`)).
		AddRow("guard-2", "Ben Shaw", "cctv-operator", nil,
			nil, nil, nil, nil, false, nil)

	mock.ExpectQuery("SELECT g.id, g.name").
		WithArgs("site-1", "2026-03-20").
		WillReturnRows(rows)

	guards, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	require.NoError(t, err)
	require.Len(t, guards, 2)

	full := guards[0]
	assert.Equal(t, "guard-1", full.ID)
	assert.Equal(t, "door-supervisor", full.GuardType)
	assert.Equal(t, "SW1A 1AA", full.PostalCode)
	require.NotNil(t, full.Coordinate)
	assert.InDelta(t, 51.501, full.Coordinate.Lat, 0.0001)
	require.NotNil(t, full.Licence)
	assert.Equal(t, models.LicenceValid, full.Licence.Status)
	require.NotNil(t, full.Licence.ExpiryDate)
	assert.True(t, full.Licence.ExpiryDate.Equal(expiry))
	assert.True(t, full.IsAvailable)
	assert.Equal(t, []string{"first-aid", "cctv"}, full.Certifications)

	sparse := guards[1]
	assert.Equal(t, "guard-2", sparse.ID)
	assert.Empty(t, sparse.PostalCode)
	assert.Nil(t, sparse.Coordinate)
	assert.Nil(t, sparse.Licence)
	assert.False(t, sparse.IsAvailable)
	assert.Nil(t, sparse.Certifications)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_FetchCandidates_Empty(t *testing.T) {
	source, mock := newPostgresTest(t)

	mock.ExpectQuery("SELECT g.id, g.name").
		WithArgs("site-remote", "2026-03-20").
		WillReturnRows(sqlmock.NewRows(guardColumns))

	guards, err := source.FetchCandidates(context.Background(), "site-remote", shiftDate)
	require.NoError(t, err)
	assert.Empty(t, guards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_FetchCandidates_QueryError(t *testing.T) {
	source, mock := newPostgresTest(t)

	mock.ExpectQuery("SELECT g.id, g.name").
		WillReturnError(assert.AnError)

	guards, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	assert.Nil(t, guards)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, errors.CodeOf(err))
}

func TestPostgresSource_FetchCandidates_ScanError(t *testing.T) {
	source, mock := newPostgresTest(t)

	rows := sqlmock.NewRows(guardColumns).
		AddRow("guard-1", "Ada", "door-supervisor", nil,
			"not-a-float", nil, nil, nil, true, nil)
	mock.ExpectQuery("SELECT g.id, g.name").WillReturnRows(rows)

	_, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, errors.CodeOf(err))
}

func TestPostgresSource_FetchCandidates_BadCertificationsJSON(t *testing.T) {
	source, mock := newPostgresTest(t)

	rows := sqlmock.NewRows(guardColumns).
		AddRow("guard-1", "Ada", "door-supervisor", nil,
			nil, nil, "valid", nil, true, []byte("{broken"))
	mock.ExpectQuery("SELECT g.id, g.name").WillReturnRows(rows)

	// Unparseable certifications degrade to none rather than failing the
	// whole fetch.
	guards, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	require.NoError(t, err)
	require.Len(t, guards, 1)
	assert.Nil(t, guards[0].Certifications)
}

// ==========================
// Memory Source
// ==========================

func TestMemorySource_FetchCandidates(t *testing.T) {
	guard := models.CandidateGuard{ID: "guard-1", Name: "Ada"}
	source := NewMemorySource(guard)

	guards, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	require.NoError(t, err)
	require.Len(t, guards, 1)

	// Mutating the returned slice must not leak into the source.
	guards[0].Name = "changed"
	again, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	require.NoError(t, err)
	assert.Equal(t, "Ada", again[0].Name)
}

func TestMemorySource_FetchCandidates_Error(t *testing.T) {
	source := &MemorySource{Err: assert.AnError}
	_, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMemorySource_FetchCandidates_CancelledContext(t *testing.T) {
	source := NewMemorySource(models.CandidateGuard{ID: "guard-1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.FetchCandidates(ctx, "site-1", shiftDate)
	assert.ErrorIs(t, err, context.Canceled)
}
