package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// EntityCache is a read-through cache keyed by table and entity id, invalidated
// by change events rather than refetched wholesale on every write. A nil
// receiver (or empty address at construction) disables caching: every method
// becomes a no-op miss.
type EntityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redis and returns the cache. An empty address returns a
// disabled cache and no error.
func New(ctx context.Context, addr, password string, ttl time.Duration) (*EntityCache, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &EntityCache{rdb: rdb, ttl: ttl}, nil
}

// Client exposes the underlying redis client (used for the reversal locks).
func (c *EntityCache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

func key(table, entityID string) string {
	return table + ":" + entityID
}

// Get unmarshals a cached entity into dest, reporting whether it was present.
func (c *EntityCache) Get(ctx context.Context, table, entityID string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key(table, entityID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores an entity under its table/id key.
func (c *EntityCache) Set(ctx context.Context, table, entityID string, obj any) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(table, entityID), data, c.ttl).Err()
}

// Invalidate removes one entity from the cache.
func (c *EntityCache) Invalidate(ctx context.Context, table, entityID string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, key(table, entityID)).Err()
}

// Deliver implements the change-event sink: any mutation to a row drops that
// row's cache key, so the next read goes through to the database.
func (c *EntityCache) Deliver(ctx context.Context, event domain.ChangeEvent) error {
	if event.Action == domain.ActionInsert {
		// Nothing cached for a brand new row.
		return nil
	}
	return c.Invalidate(ctx, event.Table, event.EntityID)
}

// Close releases the redis connection.
func (c *EntityCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
