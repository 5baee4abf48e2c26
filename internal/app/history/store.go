/*
Package history persists chat room logs.

Every backend is an append-only list of text lines per room, read back oldest
first. Redis is the default; PostgreSQL and an embedded Badger database serve
deployments without Redis, and Memory is for development and tests.
*/
package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"boardrtc/internal/app/realtime"
	"boardrtc/internal/configs"
	"boardrtc/internal/pkg/logx"
)

var (
	_ realtime.HistoryStore = (*Memory)(nil)
	_ realtime.HistoryStore = (*RedisStore)(nil)
	_ realtime.HistoryStore = (*BadgerStore)(nil)
	_ realtime.HistoryStore = (*PostgresStore)(nil)
)

// Open builds the backend selected by cfg.HistoryBackend. The returned close
// function releases what Open created; pool is borrowed and left open.
func Open(ctx context.Context, cfg *configs.AppConfig, pool *pgxpool.Pool) (realtime.HistoryStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.HistoryBackend {
	case configs.HistoryMemory:
		logx.Warn("Chat history is kept in memory and will not survive a restart")
		return NewMemory(), noop, nil

	case configs.HistoryPostgres:
		return NewPostgresStore(pool), noop, nil

	case configs.HistoryBadger:
		store, err := OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case configs.HistoryRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return NewRedisStore(client), client.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
}
