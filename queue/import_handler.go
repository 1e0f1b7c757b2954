package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"

	"photo-indexer/domain"
	"photo-indexer/logger"
	"photo-indexer/usecase"
	"photo-indexer/utils/otel"
)

// ImportRunner is the import pipeline entrypoint the handler drives.
type ImportRunner interface {
	Execute(ctx context.Context, source domain.SourceType, ownerID string, daysAgo *int) (*usecase.ImportResult, error)
}

// ImportEventHandler runs import jobs off the stream. A failed import
// is retried with exponential backoff up to MaxRetries, then the job
// is abandoned; either way the owner's uniqueness lock is released so
// the next enqueue goes through.
type ImportEventHandler struct {
	runner     ImportRunner
	client     *redis.Client
	config     Config
	logger     *slog.Logger
	contextLog *logger.ContextLogger
}

func NewImportEventHandler(runner ImportRunner, client *redis.Client, config Config, log *slog.Logger) *ImportEventHandler {
	if log == nil {
		log = slog.Default()
	}
	contextLog := logger.GlobalContext
	if contextLog == nil {
		contextLog = logger.NewContextLogger(log)
	}
	return &ImportEventHandler{
		runner:     runner,
		client:     client,
		config:     config,
		logger:     log,
		contextLog: contextLog,
	}
}

// HandleEvent processes a single event.
func (h *ImportEventHandler) HandleEvent(ctx context.Context, event Event) error {
	switch event.EventType {
	case EventTypeImportRequested:
		return h.handleImportRequested(ctx, event)
	default:
		h.logger.Warn("unknown event type, skipping",
			"event_type", event.EventType,
			"event_id", event.EventID,
		)
		return nil
	}
}

func (h *ImportEventHandler) handleImportRequested(ctx context.Context, event Event) error {
	var job domain.ImportJob
	if err := json.Unmarshal(event.Payload, &job); err != nil {
		h.logger.Error("malformed import job payload, dropping",
			"event_id", event.EventID,
			"error", err,
		)
		// Redelivery cannot fix a malformed payload.
		return nil
	}

	ctx = logger.WithJobID(ctx, event.EventID)
	ctx = logger.WithOwnerID(ctx, job.OwnerID)
	ctx = logger.WithSource(ctx, string(job.Source))
	log := h.contextLog.WithContext(ctx)

	otel.RecordJobConsumed(ctx)
	defer h.releaseLock(ctx, job)

	started := time.Now()
	bo := h.newRetryBackoff()
	for attempt := 1; ; attempt++ {
		result, err := h.runner.Execute(ctx, job.Source, job.OwnerID, job.DaysAgo)
		if err == nil {
			log.Info("import job finished",
				"indexed", result.Indexed,
				"skipped", result.Skipped,
			)
			h.contextLog.LogDurationTime(ctx, "import_job", time.Since(started))
			return nil
		}

		if attempt >= h.config.MaxRetries {
			log.Error("import job abandoned after retries",
				"attempts", attempt,
				"error", err,
			)
			h.contextLog.LogError(ctx, "import_job", err)
			return nil
		}

		delay := bo.NextBackOff()
		log.Warn("import job failed, retrying",
			"attempt", attempt,
			"retry_in", delay,
			"error", err,
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *ImportEventHandler) releaseLock(ctx context.Context, job domain.ImportJob) {
	if err := h.client.Del(ctx, lockKey(job.UniquenessKey())).Err(); err != nil {
		h.logger.Warn("failed to release job lock",
			"owner", job.OwnerID,
			"source", job.Source,
			"error", err,
		)
	}
}

// newRetryBackoff creates the exponential backoff policy for one job.
func (h *ImportEventHandler) newRetryBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = h.config.RetryInitialInterval
	bo.MaxInterval = h.config.RetryMaxInterval
	bo.Multiplier = 2
	return bo
}
