package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps a session as one hash under ls:{session}, one field per
// key. Every write refreshes the TTL of the whole session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, session, key string) ([]byte, error) {
	b, err := r.client.HGet(ctx, redisx.LocalKey(session), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return b, nil
}

func (r *RedisStore) Set(ctx context.Context, session, key string, value []byte) error {
	return r.SetMany(ctx, session, map[string][]byte{key: value})
}

func (r *RedisStore) Delete(ctx context.Context, session, key string) error {
	if err := r.client.HDel(ctx, redisx.LocalKey(session), key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisStore) SetMany(ctx context.Context, session string, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}
	hkey := redisx.LocalKey(session)
	fields := make([]any, 0, 2*len(values))
	for k, v := range values {
		fields = append(fields, k, v)
	}
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, hkey, fields...)
		if r.ttl > 0 {
			p.Expire(ctx, hkey, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
