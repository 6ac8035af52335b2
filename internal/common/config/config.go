// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Geo      GeoConfig      `mapstructure:"geo"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Engine Configuration ---

// WeightsConfig holds the sub-score weights used by the aggregator.
// They must sum to 1.0.
type WeightsConfig struct {
	Distance       float64 `mapstructure:"distance"`
	GuardType      float64 `mapstructure:"guard_type"`
	Licence        float64 `mapstructure:"licence"`
	Availability   float64 `mapstructure:"availability"`
	Certifications float64 `mapstructure:"certifications"`
}

// EngineConfig holds every named scoring constant plus the candidate-source
// selection made by the composition root.
type EngineConfig struct {
	Weights              WeightsConfig `mapstructure:"weights"`
	DistanceCeilingKm    float64       `mapstructure:"distance_ceiling_km"`
	LicenceLeadDays      int           `mapstructure:"licence_lead_days"`
	LicenceExpiryFloor   int           `mapstructure:"licence_expiry_floor"`
	TypeMismatchScore    int           `mapstructure:"type_mismatch_score"`
	UnknownLicenceScore  int           `mapstructure:"unknown_licence_score"`
	NeutralDistanceScore int           `mapstructure:"neutral_distance_score"`
	TopN                 int           `mapstructure:"top_n"`
	FetchTimeout         int           `mapstructure:"fetch_timeout"` // milliseconds
	CandidateSource      string        `mapstructure:"candidate_source"`
	ProfileRegistryPath  string        `mapstructure:"profile_registry_path"`
	Profile              string        `mapstructure:"profile"`
}

// GeoConfig holds resolver settings.
type GeoConfig struct {
	CacheTTL       int    `mapstructure:"cache_ttl"` // milliseconds
	StaticDataPath string `mapstructure:"static_data_path"`
	CacheEnabled   bool   `mapstructure:"cache_enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
