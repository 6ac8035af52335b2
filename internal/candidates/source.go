// internal/candidates/source.go
package candidates

import (
	"context"
	"time"

	"guardmatch/internal/models"
)

// Source supplies the candidate pool for one shift. Implementations may
// return an error (collaborator failure) or an empty slice (no eligible
// guards); both are valid outcomes the engine handles distinctly.
type Source interface {
	FetchCandidates(ctx context.Context, siteID string, date time.Time) ([]models.CandidateGuard, error)
}

// MemorySource serves a fixed pool. Used by tests and by composition roots
// that run against mock data.
type MemorySource struct {
	Guards []models.CandidateGuard
	Err    error
}

func NewMemorySource(guards ...models.CandidateGuard) *MemorySource {
	return &MemorySource{Guards: guards}
}

func (s *MemorySource) FetchCandidates(ctx context.Context, _ string, _ time.Time) ([]models.CandidateGuard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]models.CandidateGuard, len(s.Guards))
	copy(out, s.Guards)
	return out, nil
}
