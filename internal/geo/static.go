// internal/geo/static.go
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"guardmatch/internal/models"
)

// StaticResolver resolves postal codes from an in-memory table. It stands in
// for a real geocoding service; the composition root decides which to wire.
type StaticResolver struct {
	coords map[string]models.Coordinate
}

// NewStaticResolver builds a resolver from a postal-code -> coordinate map.
// Keys are normalized on insert.
func NewStaticResolver(coords map[string]models.Coordinate) *StaticResolver {
	normalized := make(map[string]models.Coordinate, len(coords))
	for code, c := range coords {
		normalized[NormalizePostalCode(code)] = c
	}
	return &StaticResolver{coords: normalized}
}

// LoadStaticResolver reads a JSON file of the form
// {"SW1A1AA": {"lat": 51.5, "lng": -0.14}, ...}.
func LoadStaticResolver(path string) (*StaticResolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geo data: %w", err)
	}
	var coords map[string]models.Coordinate
	if err := json.Unmarshal(data, &coords); err != nil {
		return nil, fmt.Errorf("parse geo data: %w", err)
	}
	return NewStaticResolver(coords), nil
}

func (r *StaticResolver) Resolve(_ context.Context, postalCode string) (*models.Coordinate, error) {
	c, ok := r.coords[NormalizePostalCode(postalCode)]
	if !ok {
		return nil, ErrPostalCodeNotFound
	}
	coord := c
	return &coord, nil
}
