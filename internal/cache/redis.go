package cache

import (
	"context"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// Redis implementa Cache sobre un servidor Redis.
type Redis struct {
	c      *rdb.Client
	prefix string
}

// NewRedis crea un cache respaldado por Redis.
func NewRedis(addr string, db int, prefix string) *Redis {
	return &Redis{
		c:      rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		prefix: prefix,
	}
}

func (r *Redis) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.c.Get(ctx, r.key(key)).Bytes()
	if err == rdb.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.c.Set(ctx, r.key(key), value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.c.Del(ctx, r.key(key)).Err()
}

func (r *Redis) Close() error {
	return r.c.Close()
}

// Ping verifica la conexión. Usado en el arranque para fallar temprano.
func (r *Redis) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}
