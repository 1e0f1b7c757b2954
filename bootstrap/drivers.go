package bootstrap

import (
	"context"
	"fmt"
	"time"

	"photo-indexer/config"
	"photo-indexer/driver"
	"photo-indexer/logger"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
)

// initPostgresPool connects to the profile store, retrying with
// exponential backoff while the database comes up.
func initPostgresPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 30 * time.Second
	bo.Multiplier = 2

	const maxAttempts = 5
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		pool, err := driver.NewPostgresPool(ctx, cfg.Database.GetDatabaseURL())
		if err == nil {
			logger.Logger.Info("connected to Postgres", "host", cfg.Database.Host)
			return pool, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}
		delay := bo.NextBackOff()
		logger.Logger.Warn("Postgres not ready, retrying",
			"attempt", attempt, "max", maxAttempts, "retry_in", delay, "err", err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("failed to connect to Postgres after %d attempts: %w", maxAttempts, lastErr)
}

// initMeilisearchClient connects to the search engine, retrying while
// it comes up.
func initMeilisearchClient(cfg *config.Config) (meilisearch.ServiceManager, error) {
	const maxAttempts = 5
	const retryDelay = 5 * time.Second

	logger.Logger.Info("connecting to Meilisearch", "host", cfg.Meilisearch.Host)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client := driver.NewMeilisearchClient(cfg.Meilisearch.Host, cfg.Meilisearch.APIKey)
		if _, err := client.Health(); err == nil {
			logger.Logger.Info("connected to Meilisearch")
			return client, nil
		} else {
			lastErr = err
		}

		if attempt < maxAttempts {
			logger.Logger.Warn("Meilisearch not ready, retrying",
				"attempt", attempt, "max", maxAttempts, "err", lastErr)
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to Meilisearch after %d attempts: %w", maxAttempts, lastErr)
}

// initRedisClient connects to the job queue backend.
func initRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Logger.Info("connected to Redis", "addr", opts.Addr)
	return client, nil
}
