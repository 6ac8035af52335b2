// internal/models/recommendation.go
package models

// ScoreBreakdown holds the five sub-scores and the weighted overall score
// for one candidate. All values are integers in [0,100]. DistanceKm is only
// set when both site and guard coordinates were known.
type ScoreBreakdown struct {
	Distance       int      `json:"distance"`
	GuardType      int      `json:"guardType"`
	Licence        int      `json:"licence"`
	Availability   int      `json:"availability"`
	Certifications int      `json:"certifications"`
	Overall        int      `json:"overall"`
	DistanceKm     *float64 `json:"distanceKm,omitempty"`
}

// Recommendation pairs a candidate guard with its score breakdown.
// Recommendations are derived fresh per request and never mutated.
type Recommendation struct {
	Guard      CandidateGuard `json:"guard"`
	Score      int            `json:"score"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
	DistanceKm *float64       `json:"distanceKm,omitempty"`
}
