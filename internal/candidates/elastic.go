// internal/candidates/elastic.go
package candidates

import (
	"context"
	"encoding/json"
	"time"

	"guardmatch/internal/common/database"
	"guardmatch/internal/common/errors"
	"guardmatch/internal/common/logger"
	"guardmatch/internal/models"
)

// ElasticSource loads the candidate pool from the guards search index.
// Documents carry the sites a guard can serve plus the dates they marked
// themselves available; availability stays a soft signal, so unavailable
// guards are still returned and only score 0 on that axis.
type ElasticSource struct {
	es     *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

func NewElasticSource(es *database.ElasticsearchClient, index string, log logger.Logger) *ElasticSource {
	return &ElasticSource{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "elastic-candidates"}),
	}
}

type guardDoc struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	GuardType  string `json:"guard_type"`
	PostalCode string `json:"postal_code"`
	Location   *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"location"`
	LicenceStatus  string   `json:"licence_status"`
	LicenceExpiry  string   `json:"licence_expiry"`
	Certifications []string `json:"certifications"`
	AvailableDates []string `json:"available_dates"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source guardDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticSource) FetchCandidates(ctx context.Context, siteID string, date time.Time) ([]models.CandidateGuard, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"active": true}},
					map[string]interface{}{"term": map[string]interface{}{"site_ids": siteID}},
				},
			},
		},
		"size": 500,
		"sort": []interface{}{map[string]interface{}{"id": "asc"}},
	}
	body, _ := json.Marshal(queryBody)

	raw, err := s.es.Search(ctx, s.index, string(body))
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	var resp searchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	day := date.Format("2006-01-02")
	var guards []models.CandidateGuard
	for _, hit := range resp.Hits.Hits {
		guards = append(guards, docToGuard(hit.Source, day))
	}

	s.logger.Debug("candidates fetched", map[string]interface{}{
		"siteId": siteID,
		"count":  len(guards),
	})

	return guards, nil
}

func docToGuard(doc guardDoc, day string) models.CandidateGuard {
	guard := models.CandidateGuard{
		ID:             doc.ID,
		Name:           doc.Name,
		GuardType:      doc.GuardType,
		PostalCode:     doc.PostalCode,
		Certifications: doc.Certifications,
	}

	if doc.Location != nil {
		guard.Coordinate = &models.Coordinate{Lat: doc.Location.Lat, Lng: doc.Location.Lon}
	}

	if doc.LicenceStatus != "" {
		lic := &models.Licence{Status: models.LicenceStatus(doc.LicenceStatus)}
		if doc.LicenceExpiry != "" {
			if expiry, err := time.Parse("2006-01-02", doc.LicenceExpiry); err == nil {
				lic.ExpiryDate = &expiry
			} else if expiry, err := time.Parse(time.RFC3339, doc.LicenceExpiry); err == nil {
				lic.ExpiryDate = &expiry
			}
		}
		guard.Licence = lic
	}

	for _, d := range doc.AvailableDates {
		if d == day {
			guard.IsAvailable = true
			break
		}
	}

	return guard
}
