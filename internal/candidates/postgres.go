// internal/candidates/postgres.go
package candidates

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"guardmatch/internal/common/errors"
	"guardmatch/internal/common/logger"
	"guardmatch/internal/models"
)

// PostgresSource loads the candidate pool from the workforce database:
// active guards in the site's region, joined with their availability for
// the shift date.
type PostgresSource struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresSource(db *sql.DB, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "postgres-candidates"}),
	}
}

const fetchCandidatesQuery = `
	SELECT g.id, g.name, g.guard_type, g.postal_code,
	       g.latitude, g.longitude,
	       g.licence_status, g.licence_expiry,
	       COALESCE(av.is_available, FALSE),
	       g.certifications
	FROM guards g
	JOIN sites s ON s.id = $1
	LEFT JOIN guard_availability av ON av.guard_id = g.id AND av.day = $2
	WHERE g.active = TRUE AND g.region = s.region
	ORDER BY g.id`

func (s *PostgresSource) FetchCandidates(ctx context.Context, siteID string, date time.Time) ([]models.CandidateGuard, error) {
	rows, err := s.db.QueryContext(ctx, fetchCandidatesQuery, siteID, date.Format("2006-01-02"))
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError(err)
	}
	defer rows.Close()

	var guards []models.CandidateGuard
	for rows.Next() {
		guard, err := scanGuard(rows)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError(err)
		}
		guards = append(guards, guard)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError(err)
	}

	s.logger.Debug("candidates fetched", map[string]interface{}{
		"siteId": siteID,
		"count":  len(guards),
	})

	return guards, nil
}

func scanGuard(rows *sql.Rows) (models.CandidateGuard, error) {
	var (
		guard         models.CandidateGuard
		postalCode    sql.NullString
		lat, lng      sql.NullFloat64
		licenceStatus sql.NullString
		licenceExpiry sql.NullTime
		certsRaw      []byte
	)

	err := rows.Scan(&guard.ID, &guard.Name, &guard.GuardType, &postalCode,
		&lat, &lng, &licenceStatus, &licenceExpiry,
		&guard.IsAvailable, &certsRaw)
	if err != nil {
		return guard, err
	}

	guard.PostalCode = postalCode.String
	if lat.Valid && lng.Valid {
		guard.Coordinate = &models.Coordinate{Lat: lat.Float64, Lng: lng.Float64}
	}

	if licenceStatus.Valid {
		lic := &models.Licence{Status: models.LicenceStatus(licenceStatus.String)}
		if licenceExpiry.Valid {
			expiry := licenceExpiry.Time
			lic.ExpiryDate = &expiry
		}
		guard.Licence = lic
	}

	if len(certsRaw) > 0 {
		if err := json.Unmarshal(certsRaw, &guard.Certifications); err != nil {
			guard.Certifications = nil
		}
	}

	return guard, nil
}
