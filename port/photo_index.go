package port

import (
	"context"

	"photo-indexer/domain"
)

// PhotoIndex is the search engine boundary. The import pipeline uses
// Exists and IndexPhoto for its insert-if-absent upsert; the query path
// uses Search and receives an already-translated result set.
type PhotoIndex interface {
	// EnsureIndex creates the index with the analysis schema applied.
	// Called once at startup, before anything is imported or queried.
	EnsureIndex(ctx context.Context) error
	// Exists reports whether a canonical record with this id is already
	// indexed. The import pipeline's idempotency check.
	Exists(ctx context.Context, id string) (bool, error)
	// IndexPhoto persists one canonical record by id.
	IndexPhoto(ctx context.Context, photo *domain.Photo) error
	// Search runs a query and translates the engine's raw response.
	Search(ctx context.Context, query string, offset, limit int64) (*domain.SearchResultSet, error)
}
