package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLevel(tt.input)
			if got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(slog.LevelInfo)

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected DEBUG to be disabled")
	}
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected INFO to be enabled")
	}
}

func TestTraceContextHandler_PassThrough(t *testing.T) {
	var buf bytes.Buffer
	h := NewTraceContextHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(h)

	// Without a span in context the record passes through unchanged.
	logger.Info("plain message", "key", "value")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if got := logEntry["key"]; got != "value" {
		t.Errorf("expected key to be 'value', got %v", got)
	}
	if _, ok := logEntry["trace_id"]; ok {
		t.Error("expected no trace_id without an active span")
	}
}

func TestDefaultLoggerNotNil(t *testing.T) {
	if Logger == nil {
		t.Fatal("package default Logger is nil")
	}
}
