// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DATABASE_POSTGRES_HOST
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay (config.development, config.production)
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Load .env from multiple possible locations so the binary works from the
// repo root, cmd/ directories, and test packages alike.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// applyDefaults fills every engine constant so nothing depends on a config
// file being present. These are the documented default weights/thresholds.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "guardmatch"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 20
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "guards"
	}
	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = "localhost:6379"
	}

	w := &cfg.Engine.Weights
	if w.Distance == 0 && w.GuardType == 0 && w.Licence == 0 && w.Availability == 0 && w.Certifications == 0 {
		w.Distance = 0.30
		w.GuardType = 0.20
		w.Licence = 0.20
		w.Availability = 0.15
		w.Certifications = 0.15
	}
	if cfg.Engine.DistanceCeilingKm == 0 {
		cfg.Engine.DistanceCeilingKm = 50
	}
	if cfg.Engine.LicenceLeadDays == 0 {
		cfg.Engine.LicenceLeadDays = 60
	}
	if cfg.Engine.LicenceExpiryFloor == 0 {
		cfg.Engine.LicenceExpiryFloor = 20
	}
	if cfg.Engine.TypeMismatchScore == 0 {
		cfg.Engine.TypeMismatchScore = 30
	}
	if cfg.Engine.UnknownLicenceScore == 0 {
		cfg.Engine.UnknownLicenceScore = 40
	}
	if cfg.Engine.NeutralDistanceScore == 0 {
		cfg.Engine.NeutralDistanceScore = 50
	}
	if cfg.Engine.TopN == 0 {
		cfg.Engine.TopN = 3
	}
	if cfg.Engine.FetchTimeout == 0 {
		cfg.Engine.FetchTimeout = 10000
	}
	if cfg.Engine.CandidateSource == "" {
		cfg.Engine.CandidateSource = "postgres"
	}

	if cfg.Geo.CacheTTL == 0 {
		cfg.Geo.CacheTTL = 86400000 // postcodes do not move; cache for a day
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Database.Postgres.Host == "" {
		if val := os.Getenv("DB_HOST"); val != "" {
			cfg.Database.Postgres.Host = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
	if len(cfg.Database.Elasticsearch.Addresses) == 0 {
		if val := os.Getenv("ELASTICSEARCH_URL"); val != "" {
			cfg.Database.Elasticsearch.Addresses = []string{val}
		}
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Engine.CandidateSource {
	case "postgres", "elasticsearch", "memory":
	default:
		return fmt.Errorf("unknown candidate source: %s", cfg.Engine.CandidateSource)
	}

	sum := cfg.Engine.Weights.Distance + cfg.Engine.Weights.GuardType +
		cfg.Engine.Weights.Licence + cfg.Engine.Weights.Availability +
		cfg.Engine.Weights.Certifications
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("engine weights sum to %.4f, must sum to 1.0", sum)
	}

	if cfg.Engine.DistanceCeilingKm <= 0 {
		return fmt.Errorf("distance ceiling must be positive, got %.2f", cfg.Engine.DistanceCeilingKm)
	}
	if cfg.Engine.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", cfg.Engine.TopN)
	}

	return nil
}
