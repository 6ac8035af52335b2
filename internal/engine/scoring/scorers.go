// internal/engine/scoring/scorers.go
package scoring

import (
	"math"
	"strings"
	"time"

	"guardmatch/internal/geo"
	"guardmatch/internal/models"
)

// DistanceScore maps the site/guard coordinate pair to a 0-100 score plus
// the computed distance in km. Either coordinate missing yields the neutral
// score and no distance.
func (c Config) DistanceScore(site, guard *models.Coordinate) (int, *float64) {
	if site == nil || guard == nil {
		return c.NeutralDistanceScore, nil
	}

	km := geo.HaversineKm(*site, *guard)
	if km >= c.DistanceCeilingKm {
		return 0, &km
	}

	score := int(math.Round(100 * (1 - km/c.DistanceCeilingKm)))
	return clamp(score), &km
}

// TypeMatchScore scores the guard-type category. No required type means no
// penalty; a mismatch is a strong negative signal but not disqualifying.
func (c Config) TypeMatchScore(requiredType, guardType string) int {
	if requiredType == "" {
		return 100
	}
	if guardType == requiredType {
		return 100
	}
	return c.TypeMismatchScore
}

// LicenceScore scores the licence record against the lead window. The expiry
// date is authoritative: a past expiry scores 0 even when the stored status
// was never updated.
func (c Config) LicenceScore(lic *models.Licence, now time.Time) int {
	if lic == nil || lic.Status == "" || lic.Status == models.LicenceUnknown {
		return c.UnknownLicenceScore
	}
	if lic.Status == models.LicenceExpired {
		return 0
	}

	if lic.ExpiryDate == nil {
		// No date to decay against; trust the stored status.
		if lic.Status == models.LicenceExpiringSoon {
			return (100 + c.LicenceExpiryFloor) / 2
		}
		return 100
	}

	daysLeft := lic.ExpiryDate.Sub(now).Hours() / 24
	if daysLeft <= 0 {
		return 0
	}
	lead := float64(c.LicenceLeadDays)
	if daysLeft >= lead {
		return 100
	}

	floor := float64(c.LicenceExpiryFloor)
	return clamp(int(math.Round(floor + (100-floor)*daysLeft/lead)))
}

// AvailabilityScore is the only binary scorer: available or not.
func AvailabilityScore(isAvailable bool) int {
	if isAvailable {
		return 100
	}
	return 0
}

// CertificationScore returns the fraction of required certifications the
// guard holds, scaled to 0-100. Extra certifications earn nothing. Matching
// is case-insensitive exact.
func CertificationScore(required, held []string) int {
	if len(required) == 0 {
		return 100
	}

	heldSet := make(map[string]bool, len(held))
	for _, cert := range held {
		heldSet[strings.ToLower(strings.TrimSpace(cert))] = true
	}

	matched := 0
	for _, cert := range required {
		if heldSet[strings.ToLower(strings.TrimSpace(cert))] {
			matched++
		}
	}

	return int(math.Round(100 * float64(matched) / float64(len(required))))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
