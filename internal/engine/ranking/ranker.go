// internal/engine/ranking/ranker.go
package ranking

import (
	"sort"
	"time"

	"guardmatch/internal/models"
)

// DefaultTopN is the number of recommendations surfaced to the caller.
const DefaultTopN = 3

// Rank sorts recommendations by overall score descending and truncates to
// topN. Tie-breaks, applied while scores stay equal: lower distance wins
// (unknown distance sorts last), later licence expiry wins (absent expiry
// sorts last), then guard ID ascending so output order never depends on map
// iteration order. The input slice is not modified; empty input yields an
// empty slice, not an error.
func Rank(recs []models.Recommendation, topN int) []models.Recommendation {
	ranked := make([]models.Recommendation, len(recs))
	copy(ranked, recs)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if a.Breakdown.Overall != b.Breakdown.Overall {
			return a.Breakdown.Overall > b.Breakdown.Overall
		}

		if cmp := compareDistance(a.DistanceKm, b.DistanceKm); cmp != 0 {
			return cmp < 0
		}

		if cmp := compareExpiry(a.Guard.Licence, b.Guard.Licence); cmp != 0 {
			return cmp < 0
		}

		return a.Guard.ID < b.Guard.ID
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}

// compareDistance orders known distances ascending; unknown sorts after any
// known distance.
func compareDistance(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

// compareExpiry orders later expiry first; a missing licence or expiry
// sorts last.
func compareExpiry(a, b *models.Licence) int {
	aDate := expiryOf(a)
	bDate := expiryOf(b)

	switch {
	case aDate == nil && bDate == nil:
		return 0
	case aDate == nil:
		return 1
	case bDate == nil:
		return -1
	case aDate.After(*bDate):
		return -1
	case bDate.After(*aDate):
		return 1
	default:
		return 0
	}
}

func expiryOf(lic *models.Licence) *time.Time {
	if lic == nil || lic.ExpiryDate == nil {
		return nil
	}
	return lic.ExpiryDate
}
