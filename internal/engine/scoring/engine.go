// internal/engine/scoring/engine.go
package scoring

import (
	"math"
	"time"

	"guardmatch/internal/common/logger"
	"guardmatch/internal/models"
)

// Engine computes a full score breakdown per candidate. Pure and
// deterministic: identical inputs always yield identical breakdowns, so it
// is safe to call from any goroutine.
type Engine struct {
	config Config
	logger logger.Logger
}

func NewEngine(config Config, log logger.Logger) *Engine {
	return &Engine{
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "scoring"}),
	}
}

// Score computes the five sub-scores and the weighted overall score for one
// candidate against one shift context.
func (e *Engine) Score(shift models.ShiftContext, guard models.CandidateGuard, now time.Time) models.ScoreBreakdown {
	distance, km := e.config.DistanceScore(shift.SiteCoordinate, guard.Coordinate)

	breakdown := models.ScoreBreakdown{
		Distance:       distance,
		GuardType:      e.config.TypeMatchScore(shift.RequiredGuardType, guard.GuardType),
		Licence:        e.config.LicenceScore(guard.Licence, now),
		Availability:   AvailabilityScore(guard.IsAvailable),
		Certifications: CertificationScore(shift.RequiredCertifications, guard.Certifications),
		DistanceKm:     km,
	}
	breakdown.Overall = e.config.Aggregate(breakdown)

	e.logger.Debug("candidate scored", map[string]interface{}{
		"guardId": guard.ID,
		"siteId":  shift.SiteID,
		"overall": breakdown.Overall,
	})

	return breakdown
}

// Aggregate combines the sub-scores with the configured weights, rounded
// and clamped to [0,100].
func (c Config) Aggregate(b models.ScoreBreakdown) int {
	overall := float64(b.Distance)*c.Weights.Distance +
		float64(b.GuardType)*c.Weights.GuardType +
		float64(b.Licence)*c.Weights.Licence +
		float64(b.Availability)*c.Weights.Availability +
		float64(b.Certifications)*c.Weights.Certifications

	return clamp(int(math.Round(overall)))
}
