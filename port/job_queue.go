package port

import (
	"context"

	"photo-indexer/domain"
)

// JobQueue dispatches import jobs. Enqueue is fire-and-forget: a
// duplicate enqueue for an owner whose job is still in flight collapses
// to a no-op, never a parallel run.
type JobQueue interface {
	Enqueue(ctx context.Context, job domain.ImportJob) error
}
