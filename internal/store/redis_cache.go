package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortcode/internal/shortener"
)

// RedisCacheRepository wraps a Repository with a Redis cache of taken codes.
// Only positive answers are cached; a miss always falls through to the store,
// and Insert is never answered from the cache.
type RedisCacheRepository struct {
	store  shortener.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "shortcode:taken:",
		ttl:    ttl,
	}
}

// Exists checks the cache first and falls back to the underlying store.
func (r *RedisCacheRepository) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	if n, err := r.client.Exists(ctx, r.prefix+string(code)).Result(); err == nil && n > 0 {
		return true, nil
	}

	taken, err := r.store.Exists(ctx, code)
	if err != nil {
		return false, err
	}

	if taken {
		r.markTaken(ctx, code)
	}

	return taken, nil
}

// Insert writes to the underlying store and records the code as taken.
func (r *RedisCacheRepository) Insert(ctx context.Context, mapping *shortener.Mapping) error {
	err := r.store.Insert(ctx, mapping)
	if err != nil && !errors.Is(err, shortener.ErrConflict) {
		return err
	}

	// A conflict also proves the code is taken.
	r.markTaken(ctx, mapping.ShortCode)

	return err
}

func (r *RedisCacheRepository) markTaken(ctx context.Context, code shortener.Code) {
	_ = r.client.Set(ctx, r.prefix+string(code), 1, r.ttl).Err()
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
