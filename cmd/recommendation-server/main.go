// cmd/recommendation-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"guardmatch/internal/api"
	"guardmatch/internal/candidates"
	"guardmatch/internal/common/config"
	"guardmatch/internal/common/database"
	"guardmatch/internal/common/logger"
	"guardmatch/internal/common/observability"
	"guardmatch/internal/engine"
	"guardmatch/internal/engine/scoring"
	"guardmatch/internal/geo"
	"guardmatch/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting recommendation server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("candidateSource", cfg.Engine.CandidateSource),
	)

	obs := observability.New("recommendation-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Scoring configuration (registry profile or defaults) ---
	scoringCfg := scoringConfigFrom(cfg, zapLog)
	scorer := scoring.NewEngine(scoringCfg, log)

	// --- Geo resolver ---
	resolver := buildGeoResolver(ctx, cfg, log, zapLog)

	// --- Candidate source ---
	source := buildCandidateSource(ctx, cfg, log, zapLog)

	rec := engine.NewRecommender(source, resolver, scorer, cfg.Engine.TopN, log)

	handler := api.NewHandler(rec, log)
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Wait for shutdown signal ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}

	zapLog.Info("recommendation server stopped")
}

// scoringConfigFrom resolves the scoring profile: a named registry profile
// when configured, engine defaults otherwise.
func scoringConfigFrom(cfg *config.Config, zapLog *zap.Logger) scoring.Config {
	if cfg.Engine.ProfileRegistryPath == "" {
		return scoringConfigFromEngine(cfg)
	}

	reg, err := registry.LoadRegistry(cfg.Engine.ProfileRegistryPath)
	if err != nil {
		zapLog.Fatal("profile registry load failed", zap.Error(err))
	}

	name := cfg.Engine.Profile
	if name == "" {
		name = "default"
	}
	profile, ok := reg.Find(name)
	if !ok {
		zapLog.Fatal("scoring profile not found", zap.String("profile", name))
	}

	zapLog.Info("scoring profile loaded", zap.String("profile", name))
	return profile.Config()
}

// scoringConfigFromEngine maps the flat engine config section to a scoring
// configuration.
func scoringConfigFromEngine(cfg *config.Config) scoring.Config {
	return scoring.Config{
		Weights: scoring.Weights{
			Distance:       cfg.Engine.Weights.Distance,
			GuardType:      cfg.Engine.Weights.GuardType,
			Licence:        cfg.Engine.Weights.Licence,
			Availability:   cfg.Engine.Weights.Availability,
			Certifications: cfg.Engine.Weights.Certifications,
		},
		DistanceCeilingKm:    cfg.Engine.DistanceCeilingKm,
		LicenceLeadDays:      cfg.Engine.LicenceLeadDays,
		LicenceExpiryFloor:   cfg.Engine.LicenceExpiryFloor,
		TypeMismatchScore:    cfg.Engine.TypeMismatchScore,
		UnknownLicenceScore:  cfg.Engine.UnknownLicenceScore,
		NeutralDistanceScore: cfg.Engine.NeutralDistanceScore,
	}
}

// buildGeoResolver wires the static postcode table, optionally decorated
// with the Redis cache. No resolver at all is a valid degraded mode.
func buildGeoResolver(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) geo.Resolver {
	if cfg.Geo.StaticDataPath == "" {
		zapLog.Warn("no geo data configured; distance scoring degrades to neutral for unresolved guards")
		return nil
	}

	static, err := geo.LoadStaticResolver(cfg.Geo.StaticDataPath)
	if err != nil {
		zapLog.Fatal("geo data load failed", zap.Error(err))
	}

	if !cfg.Geo.CacheEnabled {
		return static
	}

	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	zapLog.Info("Redis connected successfully")

	ttl := time.Duration(cfg.Geo.CacheTTL) * time.Millisecond
	return geo.NewCachedResolver(static, rdb.Client, ttl, log)
}

// buildCandidateSource picks the candidate-pool collaborator. The engine
// itself never switches between mock and live data; that decision is made
// here, once, at startup.
func buildCandidateSource(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) candidates.Source {
	switch cfg.Engine.CandidateSource {
	case "postgres":
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		zapLog.Info("PostgreSQL connected successfully")
		return candidates.NewPostgresSource(pg.DB, log)

	case "elasticsearch":
		var es *database.ElasticsearchClient
		err := retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping()
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
		return candidates.NewElasticSource(es, cfg.Database.Elasticsearch.Index, log)

	case "memory":
		zapLog.Warn("using empty in-memory candidate source; intended for local development only")
		return candidates.NewMemorySource()

	default:
		zapLog.Fatal("unknown candidate source", zap.String("source", cfg.Engine.CandidateSource))
		return nil
	}
}
