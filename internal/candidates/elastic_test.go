// internal/candidates/elastic_test.go
package candidates

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"guardmatch/internal/common/database"
	"guardmatch/internal/common/errors"
	"guardmatch/internal/common/logger"
	"guardmatch/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

// roundTripperFunc stubs the Elasticsearch transport so no real cluster is
// needed.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newElasticTest(t *testing.T, fn roundTripperFunc) *ElasticSource {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
		Transport: fn,
	})
	require.NoError(t, err)

	client := &database.ElasticsearchClient{Client: es}
	return NewElasticSource(client, "guards", logger.NewNoOpLogger())
}

func esResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}
}

const guardsHitsBody = `{
	"hits": {
		"hits": [
			{"_source": {
				"id": "guard-1",
				"name": "Ada Okafor",
				"guard_type": "door-supervisor",
				"postal_code": "SW1A 1AA",
				"location": {"lat": 51.501, "lon": -0.1416},
				"licence_status": "valid",
				"licence_expiry": "2026-09-01",
				"certifications": ["first-aid"],
				"available_dates": ["2026-03-20", "2026-03-21"]
			}},
			{"_source": {
				"id": "guard-2",
				"name": "Ben Shaw",
				"guard_type": "cctv-operator",
				"available_dates": ["2026-04-01"]
			}}
		]
	}
}`

// ==========================
// Fetch Tests
// ==========================

func TestElasticSource_FetchCandidates(t *testing.T) {
	var capturedBody string
	source := newElasticTest(t, func(req *http.Request) (*http.Response, error) {
		if req.Body != nil {
			raw, _ := io.ReadAll(req.Body)
			capturedBody = string(raw)
		}
		return esResponse(http.StatusOK, guardsHitsBody), nil
	})

	guards, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	require.NoError(t, err)
	require.Len(t, guards, 2)

	// The query filters on active guards assigned to the site.
	var query map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(capturedBody), &query))
	assert.Contains(t, capturedBody, `"site_ids":"site-1"`)
	assert.Contains(t, capturedBody, `"active":true`)

	full := guards[0]
	assert.Equal(t, "guard-1", full.ID)
	assert.Equal(t, "door-supervisor", full.GuardType)
	require.NotNil(t, full.Coordinate)
	assert.InDelta(t, -0.1416, full.Coordinate.Lng, 0.0001)
	require.NotNil(t, full.Licence)
	assert.Equal(t, models.LicenceValid, full.Licence.Status)
	require.NotNil(t, full.Licence.ExpiryDate)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *full.Licence.ExpiryDate)
	assert.True(t, full.IsAvailable, "marked available on the shift date")
	assert.Equal(t, []string{"first-aid"}, full.Certifications)

	sparse := guards[1]
	assert.Nil(t, sparse.Coordinate)
	assert.Nil(t, sparse.Licence)
	assert.False(t, sparse.IsAvailable, "available on a different date only")
}

func TestElasticSource_FetchCandidates_Empty(t *testing.T) {
	source := newElasticTest(t, func(*http.Request) (*http.Response, error) {
		return esResponse(http.StatusOK, `{"hits":{"hits":[]}}`), nil
	})

	guards, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	require.NoError(t, err)
	assert.Empty(t, guards)
}

func TestElasticSource_FetchCandidates_SearchError(t *testing.T) {
	source := newElasticTest(t, func(*http.Request) (*http.Response, error) {
		return esResponse(http.StatusInternalServerError, `{"error":"boom"}`), nil
	})

	guards, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	assert.Nil(t, guards)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSearchQueryFailed, errors.CodeOf(err))
}

func TestElasticSource_FetchCandidates_MalformedResponse(t *testing.T) {
	source := newElasticTest(t, func(*http.Request) (*http.Response, error) {
		return esResponse(http.StatusOK, `{not json`), nil
	})

	_, err := source.FetchCandidates(context.Background(), "site-1", shiftDate)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSearchQueryFailed, errors.CodeOf(err))
}

// ==========================
// Document Mapping
// ==========================

func TestDocToGuard_LicenceExpiryFormats(t *testing.T) {
	tests := []struct {
		name   string
		expiry string
		parsed bool
	}{
		{"date only", "2026-09-01", true},
		{"rfc3339", "2026-09-01T00:00:00Z", true},
		{"garbage", "September 1st", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := guardDoc{ID: "g", LicenceStatus: "valid", LicenceExpiry: tt.expiry}
			guard := docToGuard(doc, "2026-03-20")

			require.NotNil(t, guard.Licence)
			if tt.parsed {
				assert.NotNil(t, guard.Licence.ExpiryDate)
			} else {
				assert.Nil(t, guard.Licence.ExpiryDate)
			}
		})
	}
}

func TestDocToGuard_NoLicenceRecord(t *testing.T) {
	guard := docToGuard(guardDoc{ID: "g", Name: "No Licence"}, "2026-03-20")
	assert.Nil(t, guard.Licence)
}
