// pkg/registry/schema.go
package registry

// ProfileRegistry is the on-disk catalogue of named scoring profiles.
type ProfileRegistry struct {
	Version     string    `json:"version"`
	LastUpdated string    `json:"lastUpdated"`
	Profiles    []Profile `json:"profiles"`
}

// Profile is one named weight/threshold set. Zero-valued thresholds fall
// back to the engine defaults when converted.
type Profile struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Weights     Weights    `json:"weights"`
	Thresholds  Thresholds `json:"thresholds,omitempty"`
}

type Weights struct {
	Distance       float64 `json:"distance"`
	GuardType      float64 `json:"guardType"`
	Licence        float64 `json:"licence"`
	Availability   float64 `json:"availability"`
	Certifications float64 `json:"certifications"`
}

type Thresholds struct {
	DistanceCeilingKm    float64 `json:"distanceCeilingKm,omitempty"`
	LicenceLeadDays      int     `json:"licenceLeadDays,omitempty"`
	LicenceExpiryFloor   int     `json:"licenceExpiryFloor,omitempty"`
	TypeMismatchScore    int     `json:"typeMismatchScore,omitempty"`
	UnknownLicenceScore  int     `json:"unknownLicenceScore,omitempty"`
	NeutralDistanceScore int     `json:"neutralDistanceScore,omitempty"`
}

// registrySchema validates the registry document before any profile is
// trusted. Weight bounds are enforced here; the sum-to-1.0 rule needs
// arithmetic and is checked in LoadRegistry.
const registrySchema = `{
	"type": "object",
	"required": ["profiles"],
	"properties": {
		"version": {"type": "string"},
		"lastUpdated": {"type": "string"},
		"profiles": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "weights"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"description": {"type": "string"},
					"weights": {
						"type": "object",
						"required": ["distance", "guardType", "licence", "availability", "certifications"],
						"properties": {
							"distance": {"type": "number", "minimum": 0, "maximum": 1},
							"guardType": {"type": "number", "minimum": 0, "maximum": 1},
							"licence": {"type": "number", "minimum": 0, "maximum": 1},
							"availability": {"type": "number", "minimum": 0, "maximum": 1},
							"certifications": {"type": "number", "minimum": 0, "maximum": 1}
						}
					},
					"thresholds": {
						"type": "object",
						"properties": {
							"distanceCeilingKm": {"type": "number", "minimum": 1},
							"licenceLeadDays": {"type": "integer", "minimum": 1},
							"licenceExpiryFloor": {"type": "integer", "minimum": 0, "maximum": 100},
							"typeMismatchScore": {"type": "integer", "minimum": 0, "maximum": 100},
							"unknownLicenceScore": {"type": "integer", "minimum": 0, "maximum": 100},
							"neutralDistanceScore": {"type": "integer", "minimum": 0, "maximum": 100}
						}
					}
				}
			}
		}
	}
}`
