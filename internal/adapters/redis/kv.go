package redisad

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// KV stores each collection as one JSON string per key. Values never
// expire; Redis is the durable store here, not a cache.
type KV struct{ c *redis.Client }

func New(addr, pass string, db int) *KV {
	return &KV{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// NewFromClient wraps an existing client (used by tests with miniredis).
func NewFromClient(c *redis.Client) *KV { return &KV{c: c} }

func (r *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *KV) Set(ctx context.Context, key string, val []byte) error {
	return r.c.Set(ctx, key, val, 0).Err()
}

func (r *KV) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}
