// internal/engine/recommender.go
package engine

import (
	"context"
	"time"

	"guardmatch/internal/candidates"
	"guardmatch/internal/common/errors"
	"guardmatch/internal/common/logger"
	"guardmatch/internal/common/metrics"
	"guardmatch/internal/engine/ranking"
	"guardmatch/internal/engine/scoring"
	"guardmatch/internal/geo"
	"guardmatch/internal/models"
)

// Recommender runs the synchronous fetch -> geo-enrich -> score -> rank
// pipeline for one shift context. It owns no state between calls; each
// request gets its own candidate list and produces its own recommendations.
type Recommender struct {
	source candidates.Source
	geo    geo.Resolver
	scorer *scoring.Engine
	topN   int
	logger logger.Logger
	now    func() time.Time
}

// NewRecommender builds a pipeline. resolver may be nil, in which case
// guards without a pre-resolved coordinate score neutral on distance.
func NewRecommender(source candidates.Source, resolver geo.Resolver, scorer *scoring.Engine, topN int, log logger.Logger) *Recommender {
	if topN <= 0 {
		topN = ranking.DefaultTopN
	}
	return &Recommender{
		source: source,
		geo:    resolver,
		scorer: scorer,
		topN:   topN,
		logger: log.WithFields(map[string]interface{}{"component": "recommender"}),
		now:    time.Now,
	}
}

// Recommend fetches the candidate pool and returns the ranked top-N
// recommendations. An empty pool yields an empty slice, not an error.
func (r *Recommender) Recommend(ctx context.Context, shift models.ShiftContext) ([]models.Recommendation, error) {
	if shift.SiteID == "" {
		return nil, errors.NewInvalidShiftContextError("siteId is required")
	}

	guards, err := r.source.FetchCandidates(ctx, shift.SiteID, shift.Date)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewCandidateFetchTimeoutError(err.Error())
		}
		if _, ok := err.(*errors.StandardError); ok {
			return nil, err
		}
		return nil, errors.NewCandidateFetchFailedError(err)
	}

	metrics.CandidatePoolSize.Observe(float64(len(guards)))

	now := r.now()
	recs := make([]models.Recommendation, 0, len(guards))
	for _, guard := range guards {
		r.resolveCoordinate(ctx, &guard)

		breakdown := r.scorer.Score(shift, guard, now)
		recs = append(recs, models.Recommendation{
			Guard:      guard,
			Score:      breakdown.Overall,
			Breakdown:  breakdown,
			DistanceKm: breakdown.DistanceKm,
		})
	}

	ranked := ranking.Rank(recs, r.topN)

	r.logger.Info("recommendations computed", map[string]interface{}{
		"siteId":   shift.SiteID,
		"date":     shift.Date.Format("2006-01-02"),
		"poolSize": len(guards),
		"topN":     r.topN,
		"returned": len(ranked),
	})

	return ranked, nil
}

// resolveCoordinate fills in a missing guard coordinate from the postcode.
// Resolver failure only leaves the coordinate unset; the distance scorer
// then returns its neutral score.
func (r *Recommender) resolveCoordinate(ctx context.Context, guard *models.CandidateGuard) {
	if guard.Coordinate != nil || guard.PostalCode == "" || r.geo == nil {
		return
	}

	coord, err := r.geo.Resolve(ctx, guard.PostalCode)
	if err != nil || coord == nil {
		if err != nil {
			r.logger.Debug("postcode resolution failed", map[string]interface{}{
				"guardId":    guard.ID,
				"postalCode": guard.PostalCode,
				"error":      err,
			})
		}
		return
	}
	guard.Coordinate = coord
}
