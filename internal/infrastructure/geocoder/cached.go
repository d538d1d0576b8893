package geocoder

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
)

// Cached memoizes geocoding results in Redis. Cache failures are logged and
// fall through to the wrapped geocoder.
type Cached struct {
	Next   Geocoder
	Redis  redis.Cmdable
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewCached(next Geocoder, rdb redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *Cached {
	return &Cached{Next: next, Redis: rdb, TTL: ttl, Logger: logger}
}

func cacheKey(address string) string {
	return "geocode:" + strings.ToLower(strings.Join(strings.Fields(address), " "))
}

func (c *Cached) Geocode(ctx context.Context, address string) (entity.Location, error) {
	if c.Redis == nil {
		return c.Next.Geocode(ctx, address)
	}
	key := cacheKey(address)
	var loc entity.Location
	hit, err := helpers.RedisGetJSON(ctx, c.Redis, key, &loc)
	if err != nil {
		c.Logger.WithError(err).WithField("key", key).Warn("geocode cache read failed")
	}
	if hit {
		return loc, nil
	}
	loc, err = c.Next.Geocode(ctx, address)
	if err != nil {
		return entity.Location{}, err
	}
	if err := helpers.RedisSetJSON(ctx, c.Redis, key, loc, c.TTL); err != nil {
		c.Logger.WithError(err).WithField("key", key).Warn("geocode cache write failed")
	}
	return loc, nil
}
