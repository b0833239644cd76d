package cookie

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps cookie values in redis under prefix+name.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisStoreWithClient(client, cfg.Prefix), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Get(ctx context.Context, name string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisStore) Set(ctx context.Context, cookie *http.Cookie) error {
	expires, removed := expiry(cookie, time.Now())
	if removed {
		return r.Delete(ctx, cookie.Name)
	}
	var ttl time.Duration
	if !expires.IsZero() {
		ttl = time.Until(expires)
	}
	return r.client.Set(ctx, r.prefix+cookie.Name, cookie.Value, ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, name string) error {
	return r.client.Del(ctx, r.prefix+name).Err()
}

func (r *RedisStore) Client() *redis.Client {
	return r.client
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
