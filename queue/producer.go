package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"photo-indexer/domain"
	"photo-indexer/logger"
)

// EventTypeImportRequested tags import job messages on the stream.
const EventTypeImportRequested = "ImportRequested"

// Producer dispatches import jobs onto the stream. An enqueue for an
// owner whose job is still in flight collapses to a no-op; the lock
// the worker releases (or the TTL) opens the next slot.
type Producer struct {
	client *redis.Client
	config Config
}

func NewProducer(client *redis.Client, config Config) *Producer {
	return &Producer{client: client, config: config}
}

// Enqueue publishes one import job unless one is already in flight for
// the same owner and source.
func (p *Producer) Enqueue(ctx context.Context, job domain.ImportJob) error {
	acquired, err := p.client.SetNX(ctx, lockKey(job.UniquenessKey()), p.config.ConsumerName, p.config.LockTTL).Result()
	if err != nil {
		return err
	}
	if !acquired {
		logger.Logger.Info("job already in flight, skipping enqueue",
			"owner", job.OwnerID, "source", job.Source)
		return nil
	}

	payload, err := json.Marshal(job)
	if err != nil {
		p.releaseLock(ctx, job)
		return err
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.config.StreamKey,
		Values: map[string]interface{}{
			"event_id":   uuid.New().String(),
			"event_type": EventTypeImportRequested,
			"source":     "photo-indexer",
			"created_at": time.Now().UTC().Format(time.RFC3339),
			"payload":    string(payload),
		},
	}).Err()
	if err != nil {
		p.releaseLock(ctx, job)
		return err
	}

	logger.Logger.Info("import job enqueued",
		"owner", job.OwnerID, "source", job.Source)
	return nil
}

func (p *Producer) releaseLock(ctx context.Context, job domain.ImportJob) {
	if err := p.client.Del(ctx, lockKey(job.UniquenessKey())).Err(); err != nil {
		logger.Logger.Warn("failed to release job lock",
			"owner", job.OwnerID, "source", job.Source, "err", err)
	}
}
