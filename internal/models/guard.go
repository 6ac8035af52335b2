// internal/models/guard.go
package models

import "time"

// LicenceStatus is the stored state of a guard's SIA licence record.
type LicenceStatus string

const (
	LicenceValid        LicenceStatus = "valid"
	LicenceExpiringSoon LicenceStatus = "expiring-soon"
	LicenceExpired      LicenceStatus = "expired"
	LicenceUnknown      LicenceStatus = "unknown"
)

// Licence is a guard's licence record. ExpiryDate is authoritative over
// Status: a past expiry date means expired no matter what Status says.
type Licence struct {
	Status     LicenceStatus `json:"status"`
	ExpiryDate *time.Time    `json:"expiryDate,omitempty"`
}

// CandidateGuard is a read-only snapshot of a guard fetched for one
// recommendation request. Any of the optional fields may be absent;
// scoring resolves missing data to neutral sub-scores instead of failing.
type CandidateGuard struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	GuardType      string      `json:"guardType,omitempty"`
	PostalCode     string      `json:"postalCode,omitempty"`
	Coordinate     *Coordinate `json:"coordinate,omitempty"`
	Licence        *Licence    `json:"licence,omitempty"`
	IsAvailable    bool        `json:"isAvailable"`
	Certifications []string    `json:"certifications,omitempty"`
}
