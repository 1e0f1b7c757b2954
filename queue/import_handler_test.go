package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-indexer/domain"
	"photo-indexer/usecase"
)

type mockImportRunner struct {
	calls    int
	failures int
	lastJob  string
}

func (m *mockImportRunner) Execute(ctx context.Context, source domain.SourceType, ownerID string, daysAgo *int) (*usecase.ImportResult, error) {
	m.calls++
	m.lastJob = string(source) + ":" + ownerID
	if m.calls <= m.failures {
		return nil, errors.New("import failed")
	}
	return &usecase.ImportResult{Indexed: 2}, nil
}

func importEvent(t *testing.T, job domain.ImportJob) Event {
	t.Helper()
	payload, err := json.Marshal(job)
	require.NoError(t, err)
	return Event{
		MessageID: "1-0",
		EventID:   "evt-1",
		EventType: EventTypeImportRequested,
		Payload:   payload,
	}
}

func TestImportEventHandler_Success(t *testing.T) {
	_, client, cfg := setupQueueTest(t)
	runner := &mockImportRunner{}
	handler := NewImportEventHandler(runner, client, cfg, nil)
	ctx := context.Background()

	job := domain.ImportJob{OwnerID: "1234", Source: domain.SourceInstagram}
	require.NoError(t, client.Set(ctx, lockKey(job.UniquenessKey()), "worker", 0).Err())

	require.NoError(t, handler.HandleEvent(ctx, importEvent(t, job)))
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "instagram:1234", runner.lastJob)

	// The uniqueness lock is released after the job completes.
	exists, err := client.Exists(ctx, lockKey(job.UniquenessKey())).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}

func TestImportEventHandler_RetriesThenSucceeds(t *testing.T) {
	_, client, cfg := setupQueueTest(t)
	runner := &mockImportRunner{failures: 2}
	handler := NewImportEventHandler(runner, client, cfg, nil)

	job := domain.ImportJob{OwnerID: "1234", Source: domain.SourceInstagram}
	require.NoError(t, handler.HandleEvent(context.Background(), importEvent(t, job)))
	assert.Equal(t, 3, runner.calls)
}

func TestImportEventHandler_AbandonsAfterMaxRetries(t *testing.T) {
	_, client, cfg := setupQueueTest(t)
	cfg.MaxRetries = 3
	runner := &mockImportRunner{failures: 100}
	handler := NewImportEventHandler(runner, client, cfg, nil)
	ctx := context.Background()

	job := domain.ImportJob{OwnerID: "1234", Source: domain.SourceInstagram}
	require.NoError(t, client.Set(ctx, lockKey(job.UniquenessKey()), "worker", 0).Err())

	// The abandoned job is ACKed, not redelivered forever.
	require.NoError(t, handler.HandleEvent(ctx, importEvent(t, job)))
	assert.Equal(t, 3, runner.calls)

	// The lock is released even on abandonment.
	exists, err := client.Exists(ctx, lockKey(job.UniquenessKey())).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}

func TestImportEventHandler_LogsJobContext(t *testing.T) {
	_, client, cfg := setupQueueTest(t)
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	runner := &mockImportRunner{}
	handler := NewImportEventHandler(runner, client, cfg, log)

	job := domain.ImportJob{OwnerID: "1234", Source: domain.SourceInstagram}
	require.NoError(t, handler.HandleEvent(context.Background(), importEvent(t, job)))

	// Job lifecycle logs carry the pi.* context keys and a completion
	// entry with the job duration.
	out := buf.String()
	assert.Contains(t, out, `"pi.job.id":"evt-1"`)
	assert.Contains(t, out, `"pi.owner.id":"1234"`)
	assert.Contains(t, out, `"pi.source":"instagram"`)
	assert.Contains(t, out, "operation completed")
	assert.Contains(t, out, "duration_ms")
}

func TestImportEventHandler_MalformedPayloadDropped(t *testing.T) {
	_, client, cfg := setupQueueTest(t)
	runner := &mockImportRunner{}
	handler := NewImportEventHandler(runner, client, cfg, nil)

	event := Event{
		MessageID: "1-0",
		EventType: EventTypeImportRequested,
		Payload:   json.RawMessage("not json"),
	}
	require.NoError(t, handler.HandleEvent(context.Background(), event))
	assert.Equal(t, 0, runner.calls)
}

func TestImportEventHandler_UnknownEventTypeSkipped(t *testing.T) {
	_, client, cfg := setupQueueTest(t)
	runner := &mockImportRunner{}
	handler := NewImportEventHandler(runner, client, cfg, nil)

	event := Event{MessageID: "1-0", EventType: "ProfileDeleted"}
	require.NoError(t, handler.HandleEvent(context.Background(), event))
	assert.Equal(t, 0, runner.calls)
}
