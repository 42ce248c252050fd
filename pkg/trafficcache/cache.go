package trafficcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const DefaultExpiration = 90 * time.Minute

// Cache keeps computed station traffic in Redis so repeated slider positions
// skip the recompute.
type Cache struct {
	Cache *cache.Cache[string]
}

func (c *Cache) Setup(client *redis.Client, expiration time.Duration) {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	c.Cache = cache.New[string](redisStore)
}

func (c *Cache) Get(ctx context.Context, key string) ([]bikeshare.Station, error) {
	value, err := c.Cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var stations []bikeshare.Station
	if err := json.Unmarshal([]byte(value), &stations); err != nil {
		return nil, err
	}

	return stations, nil
}

func (c *Cache) Set(ctx context.Context, key string, stations []bikeshare.Station) error {
	stationsJSON, err := json.Marshal(stations)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, key, string(stationsJSON))
}
