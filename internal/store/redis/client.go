// Package redis backs the session store, the dedup filter, and the
// per-party lock with a shared Redis client.
package redis

import (
	"context"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"

	coreconfig "lodgebot/core/config"
	"lodgebot/core/logger"
)

// Connect opens the Redis client and verifies connectivity with a ping.
func Connect(cfg coreconfig.RedisConfig) (*backend.Client, error) {
	client := backend.NewClient(&backend.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.RDS.Error("redis ping failed",
			slog.String("event", "redis.connect"),
			slog.String("addr", cfg.Addr),
			slog.String("err", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	logger.RDS.Info("redis connected",
		slog.String("event", "redis.connect"),
		slog.String("addr", cfg.Addr),
		slog.Int("db", cfg.DB),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return client, nil
}
