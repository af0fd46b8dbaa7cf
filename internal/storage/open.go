package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/postgres"
	"github.com/ariefcatur/lawfirm-shop/internal/redisx"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Options struct {
	Backend     string
	RedisAddr   string
	PostgresDSN string
	TTL         time.Duration // redis only
}

// Open connects the configured backend. The returned func releases it.
func Open(ctx context.Context, o Options) (Store, func(), error) {
	switch o.Backend {
	case BackendMemory:
		return NewMemoryStore(), func() {}, nil
	case BackendRedis:
		rdb := redisx.New(o.RedisAddr)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisStore(rdb, o.TTL), func() { _ = rdb.Close() }, nil
	case BackendPostgres:
		db, err := postgres.Connect(ctx, o.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		s := &PostgresStore{DB: db}
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", o.Backend)
}
