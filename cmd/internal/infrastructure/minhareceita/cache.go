package minhareceita

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheKeyPrefix = "simpleguide:cnpj:"

// notFoundMarker is stored for CNPJs the registry does not know.
const notFoundMarker = "-"

// ErrCacheMiss is returned when nothing is cached for the CNPJ.
var ErrCacheMiss = errors.New("cache miss")

// RedisCache keeps lookup results for TTL. A cached ErrNotFound is
// remembered too, so unknown CNPJs are not fetched over and over.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached company, ErrNotFound for a cached miss or ErrCacheMiss.
func (r *RedisCache) Get(ctx context.Context, cnpj string) (*Company, error) {
	raw, err := r.client.Get(ctx, cacheKeyPrefix+cnpj).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}

	if err != nil {
		return nil, err
	}

	if raw == notFoundMarker {
		return nil, ErrNotFound
	}

	var company Company
	if err := json.Unmarshal([]byte(raw), &company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *RedisCache) Set(ctx context.Context, cnpj string, company *Company) error {
	data, err := json.Marshal(company)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cacheKeyPrefix+cnpj, data, r.ttl).Err()
}

func (r *RedisCache) SetNotFound(ctx context.Context, cnpj string) error {
	return r.client.Set(ctx, cacheKeyPrefix+cnpj, notFoundMarker, r.ttl).Err()
}
