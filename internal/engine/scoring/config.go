// internal/engine/scoring/config.go
package scoring

import (
	"fmt"
	"math"
)

// Weights defines the relative importance of each sub-score.
// All weights must sum to 1.0 (±0.001 tolerance).
type Weights struct {
	Distance       float64
	GuardType      float64
	Licence        float64
	Availability   float64
	Certifications float64
}

// DefaultWeights returns the documented default weight distribution.
func DefaultWeights() Weights {
	return Weights{
		Distance:       0.30,
		GuardType:      0.20,
		Licence:        0.20,
		Availability:   0.15,
		Certifications: 0.15,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Distance + w.GuardType + w.Licence + w.Availability + w.Certifications
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Distance, w.GuardType, w.Licence, w.Availability, w.Certifications} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// Config holds the weights plus every named scoring threshold. Defaults are
// the audited values documented alongside each field.
type Config struct {
	Weights Weights

	// DistanceCeilingKm is the distance at or beyond which the distance
	// sub-score is 0. 0 km scores 100, linear in between.
	DistanceCeilingKm float64

	// LicenceLeadDays is the expiry lead window. More days remaining than
	// this scores 100; inside the window the score decays linearly.
	LicenceLeadDays int

	// LicenceExpiryFloor is the licence score at zero days remaining.
	LicenceExpiryFloor int

	// TypeMismatchScore is the guard-type score on a mismatch. Low but
	// non-zero so the next-best option stays visible.
	TypeMismatchScore int

	// UnknownLicenceScore is the licence score when no record exists.
	UnknownLicenceScore int

	// NeutralDistanceScore is the distance score when either coordinate
	// is unknown. Missing geodata must never disqualify a candidate.
	NeutralDistanceScore int
}

// DefaultConfig returns the engine defaults: ceiling 50 km, lead window
// 60 days, floor 20, mismatch 30, unknown licence 40, neutral distance 50.
func DefaultConfig() Config {
	return Config{
		Weights:              DefaultWeights(),
		DistanceCeilingKm:    50,
		LicenceLeadDays:      60,
		LicenceExpiryFloor:   20,
		TypeMismatchScore:    30,
		UnknownLicenceScore:  40,
		NeutralDistanceScore: 50,
	}
}

// Validate checks the full scoring configuration.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.DistanceCeilingKm <= 0 {
		return fmt.Errorf("distance ceiling must be positive, got %.2f", c.DistanceCeilingKm)
	}
	if c.LicenceLeadDays <= 0 {
		return fmt.Errorf("licence lead window must be positive, got %d", c.LicenceLeadDays)
	}
	for name, v := range map[string]int{
		"licence expiry floor":   c.LicenceExpiryFloor,
		"type mismatch score":    c.TypeMismatchScore,
		"unknown licence score":  c.UnknownLicenceScore,
		"neutral distance score": c.NeutralDistanceScore,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s out of range [0,100]: %d", name, v)
		}
	}
	return nil
}
