package port

import (
	"context"

	"photo-indexer/domain"
)

// ProfileRepository stores registered photo owners per source.
type ProfileRepository interface {
	// CreateProfile registers a profile. Re-registering an existing id
	// updates the mutable name and profile type; the id never changes.
	CreateProfile(ctx context.Context, profile *domain.Profile) error
	GetProfile(ctx context.Context, id string, source domain.SourceType) (*domain.Profile, error)
	ListProfiles(ctx context.Context, source domain.SourceType) ([]*domain.Profile, error)
	// StreamProfiles enumerates all profiles for a source through a
	// forward-only cursor, invoking fn once per profile. A failure on
	// one profile must not abort enumeration of the rest.
	StreamProfiles(ctx context.Context, source domain.SourceType, fn func(*domain.Profile)) error
}
