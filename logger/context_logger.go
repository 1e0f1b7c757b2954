package logger

import (
	"context"
	"log/slog"
	"time"
)

// ContextKey is the type for context keys used in logging
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	OperationKey ContextKey = "operation"

	// Business context keys follow OpenTelemetry semantic conventions
	// with a 'pi.' prefix
	OwnerIDKey     ContextKey = "pi.owner.id"
	PhotoIDKey     ContextKey = "pi.photo.id"
	JobIDKey       ContextKey = "pi.job.id"
	SourceKey      ContextKey = "pi.source"
	ImportStageKey ContextKey = "pi.import.stage"
)

// GlobalContext is the global ContextLogger instance
var GlobalContext *ContextLogger

// ContextLogger wraps a slog.Logger to add context-aware logging
type ContextLogger struct {
	logger *slog.Logger
}

// NewContextLogger creates a new ContextLogger wrapping the provided logger
func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

// WithContext adds context values to log entries and returns a new logger
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	args := make([]any, 0)

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		args = append(args, "request_id", requestID.(string))
	}

	if operation := ctx.Value(OperationKey); operation != nil {
		args = append(args, "operation", operation.(string))
	}

	if ownerID := ctx.Value(OwnerIDKey); ownerID != nil {
		args = append(args, string(OwnerIDKey), ownerID.(string))
	}

	if photoID := ctx.Value(PhotoIDKey); photoID != nil {
		args = append(args, string(PhotoIDKey), photoID.(string))
	}

	if jobID := ctx.Value(JobIDKey); jobID != nil {
		args = append(args, string(JobIDKey), jobID.(string))
	}

	if source := ctx.Value(SourceKey); source != nil {
		args = append(args, string(SourceKey), source.(string))
	}

	if stage := ctx.Value(ImportStageKey); stage != nil {
		args = append(args, string(ImportStageKey), stage.(string))
	}

	return cl.logger.With(args...)
}

// LogDuration logs an operation completion with duration in milliseconds
func (cl *ContextLogger) LogDuration(ctx context.Context, operation string, durationMs int64) {
	cl.WithContext(ctx).Info("operation completed",
		"operation", operation,
		"duration_ms", durationMs,
	)
}

// LogError logs an operation failure with error details
func (cl *ContextLogger) LogError(ctx context.Context, operation string, err error) {
	cl.WithContext(ctx).Error("operation failed",
		"operation", operation,
		"error", err,
	)
}

// WithOwnerID adds the photo owner id to context for observability
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, OwnerIDKey, ownerID)
}

// WithPhotoID adds the photo id to context for observability
func WithPhotoID(ctx context.Context, photoID string) context.Context {
	return context.WithValue(ctx, PhotoIDKey, photoID)
}

// WithJobID adds the import job id to context for observability
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, JobIDKey, jobID)
}

// WithSource adds the upstream source name to context for observability
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// WithImportStage adds the import pipeline stage to context for observability
func WithImportStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, ImportStageKey, stage)
}

// LogDurationTime is a convenience function that takes time.Duration
func (cl *ContextLogger) LogDurationTime(ctx context.Context, operation string, duration time.Duration) {
	cl.LogDuration(ctx, operation, duration.Milliseconds())
}
