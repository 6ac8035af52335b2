// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validRegistry = `{
	"version": "1.0",
	"lastUpdated": "2026-03-01",
	"profiles": [
		{
			"name": "default",
			"description": "Standard balance across all factors",
			"weights": {
				"distance": 0.30,
				"guardType": 0.20,
				"licence": 0.20,
				"availability": 0.15,
				"certifications": 0.15
			}
		},
		{
			"name": "proximity-first",
			"weights": {
				"distance": 0.50,
				"guardType": 0.15,
				"licence": 0.15,
				"availability": 0.10,
				"certifications": 0.10
			},
			"thresholds": {
				"distanceCeilingKm": 25
			}
		}
	]
}`

// ==========================
// Loading and Validation
// ==========================

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, validRegistry))
	require.NoError(t, err)

	assert.Equal(t, "1.0", reg.Version)
	require.Len(t, reg.Profiles, 2)
	assert.Equal(t, "default", reg.Profiles[0].Name)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{broken`},
		{"no profiles key", `{"version": "1.0"}`},
		{"profile without name", `{"profiles": [{"weights": {"distance": 1, "guardType": 0, "licence": 0, "availability": 0, "certifications": 0}}]}`},
		{"profile without weights", `{"profiles": [{"name": "x"}]}`},
		{"weight out of bounds", `{"profiles": [{"name": "x", "weights": {"distance": 1.5, "guardType": 0, "licence": 0, "availability": 0, "certifications": 0}}]}`},
		{"weights do not sum to one", `{"profiles": [{"name": "x", "weights": {"distance": 0.5, "guardType": 0.1, "licence": 0.1, "availability": 0.1, "certifications": 0.1}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRegistry(writeRegistry(t, tt.content))
			assert.Error(t, err)
		})
	}
}

// ==========================
// Lookup and Conversion
// ==========================

func TestProfileRegistry_Find(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, validRegistry))
	require.NoError(t, err)

	profile, ok := reg.Find("proximity-first")
	require.True(t, ok)
	assert.Equal(t, "proximity-first", profile.Name)

	_, ok = reg.Find("no-such-profile")
	assert.False(t, ok)
}

func TestProfile_Config(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, validRegistry))
	require.NoError(t, err)

	profile, ok := reg.Find("proximity-first")
	require.True(t, ok)

	cfg := profile.Config()
	require.NoError(t, cfg.Validate())

	assert.InDelta(t, 0.50, cfg.Weights.Distance, 0.0001)
	assert.InDelta(t, 25.0, cfg.DistanceCeilingKm, 0.0001)

	// Thresholds the profile leaves unset keep the engine defaults.
	assert.Equal(t, 60, cfg.LicenceLeadDays)
	assert.Equal(t, 20, cfg.LicenceExpiryFloor)
	assert.Equal(t, 40, cfg.UnknownLicenceScore)
}
