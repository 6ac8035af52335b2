// internal/geo/resolver.go
package geo

import (
	"context"
	"errors"
	"math"
	"strings"

	"guardmatch/internal/models"
)

var (
	ErrPostalCodeNotFound = errors.New("POSTAL_CODE_NOT_FOUND")
)

// Resolver maps a postal code to a coordinate. Implementations may fail or
// find nothing; callers must treat both as "no coordinate" rather than an
// error of the overall recommendation.
type Resolver interface {
	Resolve(ctx context.Context, postalCode string) (*models.Coordinate, error)
}

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two coordinates
// in kilometers.
func HaversineKm(a, b models.Coordinate) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// NormalizePostalCode uppercases and strips interior whitespace so cache
// keys and lookups are stable across formatting variants.
func NormalizePostalCode(code string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), " ", ""))
}
