// Package queue dispatches and consumes import jobs over Redis
// Streams. One job per owner and source is in flight at a time,
// enforced with a uniqueness lock at enqueue.
package queue

import (
	"os"
	"strconv"
	"time"
)

// Config holds queue configuration.
type Config struct {
	// RedisURL is the Redis connection URL.
	RedisURL string
	// GroupName is the consumer group name.
	GroupName string
	// ConsumerName is this consumer's name within the group.
	ConsumerName string
	// StreamKey is the Redis Stream key jobs travel on.
	StreamKey string
	// BatchSize is the number of messages to read at once.
	BatchSize int64
	// BlockTimeout is how long to block waiting for messages.
	BlockTimeout time.Duration
	// LockTTL caps how long a job uniqueness lock can outlive a
	// crashed worker.
	LockTTL time.Duration
	// MaxRetries bounds how often a failed import is retried before
	// the job is abandoned.
	MaxRetries int
	// RetryInitialInterval is the first retry delay; subsequent delays
	// grow exponentially.
	RetryInitialInterval time.Duration
	// RetryMaxInterval caps the retry delay.
	RetryMaxInterval time.Duration
	// ClaimMinIdle is how long a pending entry must sit unacknowledged
	// before another consumer may claim it from a crashed peer.
	ClaimMinIdle time.Duration
	// Enabled determines if the consumer is active.
	Enabled bool
}

// DefaultConfig returns a default queue configuration.
func DefaultConfig() Config {
	return Config{
		RedisURL:             "redis://localhost:6379",
		GroupName:            "photo-indexer-group",
		ConsumerName:         "photo-indexer-1",
		StreamKey:            "pi:jobs:imports",
		BatchSize:            10,
		BlockTimeout:         5 * time.Second,
		LockTTL:              30 * time.Minute,
		MaxRetries:           5,
		RetryInitialInterval: 5 * time.Second,
		RetryMaxInterval:     5 * time.Minute,
		ClaimMinIdle:         time.Minute,
		Enabled:              true,
	}
}

// ConfigFromEnv loads queue configuration from environment variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("REDIS_STREAMS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("QUEUE_GROUP"); v != "" {
		cfg.GroupName = v
	}
	if v := os.Getenv("QUEUE_CONSUMER_NAME"); v != "" {
		cfg.ConsumerName = v
	}
	if v := os.Getenv("QUEUE_STREAM_KEY"); v != "" {
		cfg.StreamKey = v
	}
	if v := os.Getenv("QUEUE_BATCH_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.BatchSize = n
		}
	}
	if v := os.Getenv("QUEUE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("QUEUE_LOCK_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.LockTTL = d
		}
	}
	if v := os.Getenv("QUEUE_CLAIM_MIN_IDLE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ClaimMinIdle = d
		}
	}
	if v := os.Getenv("QUEUE_ENABLED"); v != "" {
		cfg.Enabled = v == "true" || v == "1"
	}

	return cfg
}

// lockKey is the Redis key holding the uniqueness lock for one
// owner+source job.
func lockKey(uniquenessKey string) string {
	return "pi:jobs:lock:" + uniquenessKey
}
