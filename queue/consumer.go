package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is one message read off the stream.
type Event struct {
	// MessageID is the Redis Stream message ID.
	MessageID string
	// EventID is the unique event identifier.
	EventID string
	// EventType is the type of event.
	EventType string
	// Source is the service that produced the event.
	Source string
	// CreatedAt is when the event was created.
	CreatedAt time.Time
	// Payload is the event-specific data.
	Payload json.RawMessage
}

// EventHandler processes events from the stream.
type EventHandler interface {
	// HandleEvent processes a single event.
	HandleEvent(ctx context.Context, event Event) error
}

// Consumer reads import job events off the stream through a consumer
// group and hands them to a handler.
type Consumer struct {
	client       *redis.Client
	config       Config
	handler      EventHandler
	logger       *slog.Logger
	shutdownChan chan struct{}
}

// NewConsumer creates a new Redis Streams consumer.
func NewConsumer(client *redis.Client, config Config, handler EventHandler, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		client:       client,
		config:       config,
		handler:      handler,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}
}

// Start begins consuming events from the stream.
func (c *Consumer) Start(ctx context.Context) error {
	if !c.config.Enabled {
		c.logger.Info("queue consumer disabled, not starting")
		return nil
	}

	if err := c.ensureConsumerGroup(ctx); err != nil {
		return err
	}

	c.logger.Info("starting queue consumer",
		"stream", c.config.StreamKey,
		"group", c.config.GroupName,
		"consumer", c.config.ConsumerName,
	)

	go c.consumeLoop(ctx)
	return nil
}

// Stop gracefully stops the consumer.
func (c *Consumer) Stop() {
	if c.shutdownChan != nil {
		close(c.shutdownChan)
	}
}

// ensureConsumerGroup creates the consumer group if it doesn't exist.
func (c *Consumer) ensureConsumerGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.config.StreamKey, c.config.GroupName, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// consumeLoop continuously reads and processes events.
func (c *Consumer) consumeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("queue consumer context cancelled, stopping")
			return
		case <-c.shutdownChan:
			c.logger.Info("queue consumer shutdown requested, stopping")
			return
		default:
			if err := c.readAndProcess(ctx); err != nil {
				c.logger.Error("error processing events", "error", err)
				time.Sleep(time.Second)
			}
		}
	}
}

// readAndProcess reclaims stale pending entries, then reads one batch
// from the stream and processes it.
func (c *Consumer) readAndProcess(ctx context.Context) error {
	claimed, err := c.reclaimStale(ctx)
	if err != nil {
		c.logger.Error("failed to reclaim pending entries", "error", err)
	}
	c.processMessages(ctx, claimed)

	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.config.GroupName,
		Consumer: c.config.ConsumerName,
		Streams:  []string{c.config.StreamKey, ">"},
		Count:    c.config.BatchSize,
		Block:    c.config.BlockTimeout,
	}).Result()

	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	for _, stream := range streams {
		c.processMessages(ctx, stream.Messages)
	}

	return nil
}

// reclaimStale claims pending entries that have sat unacknowledged for
// at least ClaimMinIdle, so jobs left behind by a crashed consumer are
// picked up instead of staying pending forever.
func (c *Consumer) reclaimStale(ctx context.Context) ([]redis.XMessage, error) {
	pending, err := c.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: c.config.StreamKey,
		Group:  c.config.GroupName,
		Idle:   c.config.ClaimMinIdle,
		Start:  "-",
		End:    "+",
		Count:  c.config.BatchSize,
	}).Result()
	if err != nil || len(pending) == 0 {
		return nil, err
	}

	ids := make([]string, 0, len(pending))
	for _, entry := range pending {
		if entry.Idle < c.config.ClaimMinIdle {
			continue
		}
		ids = append(ids, entry.ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	claimed, err := c.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   c.config.StreamKey,
		Group:    c.config.GroupName,
		Consumer: c.config.ConsumerName,
		MinIdle:  c.config.ClaimMinIdle,
		Messages: ids,
	}).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(claimed) > 0 {
		c.logger.Info("reclaimed stale pending entries", "count", len(claimed))
	}
	return claimed, nil
}

// processMessages hands each message to the handler and ACKs it on
// success.
func (c *Consumer) processMessages(ctx context.Context, messages []redis.XMessage) {
	for _, message := range messages {
		event := c.parseEvent(message)

		if err := c.handler.HandleEvent(ctx, event); err != nil {
			c.logger.Error("failed to process event",
				"message_id", message.ID,
				"event_type", event.EventType,
				"error", err,
			)
			// Not ACKed: the pending entry is redelivered
			continue
		}

		if err := c.client.XAck(ctx, c.config.StreamKey, c.config.GroupName, message.ID).Err(); err != nil {
			c.logger.Error("failed to acknowledge message",
				"message_id", message.ID,
				"error", err,
			)
		}
	}
}

// parseEvent converts a Redis Stream message to an Event.
func (c *Consumer) parseEvent(message redis.XMessage) Event {
	event := Event{MessageID: message.ID}

	if v, ok := message.Values["event_id"].(string); ok {
		event.EventID = v
	}
	if v, ok := message.Values["event_type"].(string); ok {
		event.EventType = v
	}
	if v, ok := message.Values["source"].(string); ok {
		event.Source = v
	}
	if v, ok := message.Values["created_at"].(string); ok {
		event.CreatedAt, _ = time.Parse(time.RFC3339, v)
	}
	if v, ok := message.Values["payload"].(string); ok {
		event.Payload = json.RawMessage(v)
	}

	return event
}
