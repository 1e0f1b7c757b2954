package port

import (
	"context"
	"time"

	"photo-indexer/domain"
)

// RawPhoto is one source-native item as fetched, before canonical
// mapping. Mapping happens per item so a malformed item fails alone.
type RawPhoto interface {
	// ID returns the source-native id, available even when mapping the
	// rest of the item would fail.
	ID() string
	// Photo maps source-native fields to a canonical record, including
	// type-specific derivations (popularity, caption extraction).
	Photo() (*domain.Photo, error)
}

// SourceAdapter fetches one maximal page of recent items for an owner
// from one upstream API. A nil since requests the unfiltered maximum
// batch; profileType selects the user or group endpoint on sources that
// distinguish them. Transport and auth errors fail the whole call;
// per-item recovery is the import coordinator's job.
type SourceAdapter interface {
	Source() domain.SourceType
	FetchRecent(ctx context.Context, ownerID string, profileType domain.ProfileType, since *time.Time) ([]RawPhoto, error)
}
