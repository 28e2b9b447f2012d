package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrCacheMiss is returned when the pair has no cached price.
var ErrCacheMiss = errors.New("cache miss")

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "thryx",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Price cache hits",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "thryx",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Price cache misses",
	})
	cacheErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "thryx",
		Subsystem: "cache",
		Name:      "errors_total",
		Help:      "Price cache backend errors",
	})
)

// Config holds Redis connection settings.
type Config struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache is a Redis-backed PriceCache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg Config) (*RedisCache, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

func priceKey(pair string) string { return "thryx:price:" + pair }

// Get returns the cached price for the pair, or ErrCacheMiss.
func (c *RedisCache) Get(ctx context.Context, pair string) (CachedPrice, error) {
	data, err := c.client.Get(ctx, priceKey(pair)).Bytes()
	if err == redis.Nil {
		cacheMisses.Inc()
		return CachedPrice{}, ErrCacheMiss
	}
	if err != nil {
		cacheErrors.Inc()
		return CachedPrice{}, fmt.Errorf("cache get %s: %w", pair, err)
	}

	var price CachedPrice
	if err := json.Unmarshal(data, &price); err != nil {
		cacheErrors.Inc()
		return CachedPrice{}, fmt.Errorf("decode cached price %s: %w", pair, err)
	}
	cacheHits.Inc()
	return price, nil
}

// Set stores the price with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, price CachedPrice) error {
	data, err := json.Marshal(price)
	if err != nil {
		return fmt.Errorf("encode price %s: %w", price.Pair, err)
	}
	if err := c.client.Set(ctx, priceKey(price.Pair), data, c.ttl).Err(); err != nil {
		cacheErrors.Inc()
		return fmt.Errorf("cache set %s: %w", price.Pair, err)
	}
	return nil
}

// Invalidate drops the cached price for the pair.
func (c *RedisCache) Invalidate(ctx context.Context, pair string) error {
	if err := c.client.Del(ctx, priceKey(pair)).Err(); err != nil {
		cacheErrors.Inc()
		return fmt.Errorf("cache invalidate %s: %w", pair, err)
	}
	return nil
}

// Close shuts down the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
