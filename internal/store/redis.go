package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortcode/internal/shortener"
)

// RedisStore is a Redis implementation of shortener.Repository.
// Each mapping lives under its own key and is written with SET NX.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type redisMapping struct {
	ID          uuid.UUID `json:"id"`
	OriginalURL string    `json:"originalUrl"`
	ShortCode   string    `json:"shortCode"`
	ShortURL    string    `json:"shortUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewRedisStore creates a new Redis-backed mapping store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "shortcode:",
	}
}

func (r *RedisStore) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *RedisStore) Insert(ctx context.Context, mapping *shortener.Mapping) error {
	payload, err := json.Marshal(redisMapping{
		ID:          mapping.ID,
		OriginalURL: mapping.OriginalURL,
		ShortCode:   string(mapping.ShortCode),
		ShortURL:    mapping.ShortURL,
		CreatedAt:   mapping.CreatedAt,
		UpdatedAt:   mapping.UpdatedAt,
	})
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, r.prefix+string(mapping.ShortCode), payload, 0).Result()
	if err != nil {
		return err
	}

	if !ok {
		return shortener.ErrConflict
	}

	return nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisStore)(nil)
