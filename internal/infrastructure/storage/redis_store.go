package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/doeshing/copywriter-go/internal/ports"
)

var tracer = otel.Tracer("github.com/doeshing/copywriter-go/internal/infrastructure/storage")

// RedisStore keeps values as plain redis strings without expiry.
type RedisStore struct {
	rdb  *redis.Client
	addr string
}

// OpenRedis connects and pings the server.
func OpenRedis(ctx context.Context, addr string, db int) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("storage.redis_addr is empty")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisStore{rdb: rdb, addr: addr}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := tracer.Start(ctx, "redis.Get", trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	val, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := tracer.Start(ctx, "redis.Set", trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	if err := r.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "redis.Del", trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	return r.rdb.Del(ctx, key).Err()
}

// Location returns the redis address.
func (r *RedisStore) Location() string {
	return "redis://" + r.addr
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

var _ ports.KeyValueStore = (*RedisStore)(nil)
