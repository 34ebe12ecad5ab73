package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/redis/go-redis/v9"
)

func snapshotKey(key string) string { return "conquest:" + key + ":snapshot" }

// RedisStore keeps snapshots as Redis strings, optionally expiring idle games.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to the Redis server at redisURL. A zero ttl keeps
// snapshots forever.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Save(ctx context.Context, key string, s game.Snapshot) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, snapshotKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, key string) (game.Snapshot, error) {
	if err := checkKey(key); err != nil {
		return game.Snapshot{}, err
	}
	data, err := r.rdb.Get(ctx, snapshotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return Decode(data)
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, snapshotKey(key)).Err(); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
