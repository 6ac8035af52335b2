// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"guardmatch/internal/engine/scoring"

	"github.com/xeipuuv/gojsonschema"
)

// LoadRegistry reads and validates a scoring-profile registry file. Every
// profile must pass both schema validation and the scoring config rules
// (weights sum to 1.0, thresholds in range).
func LoadRegistry(path string) (*ProfileRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile registry: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(registrySchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validate profile registry: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("invalid profile registry: %s", strings.Join(problems, "; "))
	}

	var reg ProfileRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse profile registry: %w", err)
	}

	for i := range reg.Profiles {
		cfg := reg.Profiles[i].Config()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", reg.Profiles[i].Name, err)
		}
	}

	return &reg, nil
}

// Find returns the named profile.
func (r *ProfileRegistry) Find(name string) (*Profile, bool) {
	for i := range r.Profiles {
		if r.Profiles[i].Name == name {
			return &r.Profiles[i], true
		}
	}
	return nil, false
}

// Config converts the profile to a scoring configuration, falling back to
// engine defaults for any threshold the profile leaves unset.
func (p *Profile) Config() scoring.Config {
	cfg := scoring.DefaultConfig()

	cfg.Weights = scoring.Weights{
		Distance:       p.Weights.Distance,
		GuardType:      p.Weights.GuardType,
		Licence:        p.Weights.Licence,
		Availability:   p.Weights.Availability,
		Certifications: p.Weights.Certifications,
	}

	if p.Thresholds.DistanceCeilingKm > 0 {
		cfg.DistanceCeilingKm = p.Thresholds.DistanceCeilingKm
	}
	if p.Thresholds.LicenceLeadDays > 0 {
		cfg.LicenceLeadDays = p.Thresholds.LicenceLeadDays
	}
	if p.Thresholds.LicenceExpiryFloor > 0 {
		cfg.LicenceExpiryFloor = p.Thresholds.LicenceExpiryFloor
	}
	if p.Thresholds.TypeMismatchScore > 0 {
		cfg.TypeMismatchScore = p.Thresholds.TypeMismatchScore
	}
	if p.Thresholds.UnknownLicenceScore > 0 {
		cfg.UnknownLicenceScore = p.Thresholds.UnknownLicenceScore
	}
	if p.Thresholds.NeutralDistanceScore > 0 {
		cfg.NeutralDistanceScore = p.Thresholds.NeutralDistanceScore
	}

	return cfg
}
