// internal/geo/cached.go
package geo

import (
	"context"
	"encoding/json"
	"time"

	"guardmatch/internal/common/logger"
	"guardmatch/internal/common/metrics"
	"guardmatch/internal/models"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "geo:postcode:"

// CachedResolver decorates another Resolver with a Redis cache so repeated
// postcode lookups do not hit the upstream geocoder. Cache failures are
// never surfaced; the inner resolver is always the fallback.
type CachedResolver struct {
	inner  Resolver
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedResolver(inner Resolver, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedResolver {
	return &CachedResolver{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "geo-cache"}),
	}
}

func (r *CachedResolver) Resolve(ctx context.Context, postalCode string) (*models.Coordinate, error) {
	key := cacheKeyPrefix + NormalizePostalCode(postalCode)

	if val, err := r.redis.Get(ctx, key).Result(); err == nil {
		var coord models.Coordinate
		if err := json.Unmarshal([]byte(val), &coord); err == nil {
			metrics.GeoCacheLookups.WithLabelValues("hit").Inc()
			return &coord, nil
		}
	}
	metrics.GeoCacheLookups.WithLabelValues("miss").Inc()

	coord, err := r.inner.Resolve(ctx, postalCode)
	if err != nil {
		return nil, err
	}

	data, _ := json.Marshal(coord)
	if err := r.redis.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Debug("cache write failed", map[string]interface{}{
			"postalCode": postalCode,
			"error":      err,
		})
	}

	return coord, nil
}
