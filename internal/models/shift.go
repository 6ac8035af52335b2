// internal/models/shift.go
package models

import "time"

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ShiftContext is the immutable context of one recommendation request:
// the open shift a manager wants to fill.
type ShiftContext struct {
	SiteID                 string      `json:"siteId"`
	SiteCoordinate         *Coordinate `json:"siteCoordinate,omitempty"`
	Date                   time.Time   `json:"date"`
	RequiredGuardType      string      `json:"requiredGuardType,omitempty"`
	RequiredCertifications []string    `json:"requiredCertifications,omitempty"`
}
