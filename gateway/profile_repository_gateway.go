package gateway

import (
	"context"

	"photo-indexer/domain"
	"photo-indexer/driver"
)

// ProfileDriver is the storage-facing contract the profile gateway
// needs.
type ProfileDriver interface {
	CreateProfile(ctx context.Context, row driver.ProfileRow) error
	GetProfile(ctx context.Context, id, source string) (*driver.ProfileRow, bool, error)
	ListProfiles(ctx context.Context, source string) ([]driver.ProfileRow, error)
	StreamProfiles(ctx context.Context, source string, fn func(driver.ProfileRow)) error
}

// ProfileRepositoryGateway implements the profile repository port over
// a storage driver.
type ProfileRepositoryGateway struct {
	driver ProfileDriver
}

func NewProfileRepositoryGateway(profileDriver ProfileDriver) *ProfileRepositoryGateway {
	return &ProfileRepositoryGateway{driver: profileDriver}
}

func (g *ProfileRepositoryGateway) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	row := driver.ProfileRow{
		ID:          profile.ID(),
		Name:        profile.Name(),
		ProfileType: string(profile.ProfileType()),
		Source:      string(profile.Source()),
	}
	if err := g.driver.CreateProfile(ctx, row); err != nil {
		return &domain.RepositoryError{
			Op:  "CreateProfile",
			Err: err.Error(),
		}
	}
	return nil
}

// GetProfile returns nil without error when no such profile exists.
func (g *ProfileRepositoryGateway) GetProfile(ctx context.Context, id string, source domain.SourceType) (*domain.Profile, error) {
	row, found, err := g.driver.GetProfile(ctx, id, string(source))
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "GetProfile",
			Err: err.Error(),
		}
	}
	if !found {
		return nil, nil
	}

	profile, err := g.convertToDomain(row)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "GetProfile",
			Err: "failed to convert profile to domain: id=" + row.ID + ", " + err.Error(),
		}
	}
	return profile, nil
}

func (g *ProfileRepositoryGateway) ListProfiles(ctx context.Context, source domain.SourceType) ([]*domain.Profile, error) {
	rows, err := g.driver.ListProfiles(ctx, string(source))
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "ListProfiles",
			Err: err.Error(),
		}
	}

	profiles := make([]*domain.Profile, 0, len(rows))
	for _, row := range rows {
		profile, err := g.convertToDomain(&row)
		if err != nil {
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// StreamProfiles enumerates profiles through the driver's forward-only
// cursor. A row that fails domain conversion is skipped; the rest of
// the sweep continues.
func (g *ProfileRepositoryGateway) StreamProfiles(ctx context.Context, source domain.SourceType, fn func(*domain.Profile)) error {
	err := g.driver.StreamProfiles(ctx, string(source), func(row driver.ProfileRow) {
		profile, convErr := g.convertToDomain(&row)
		if convErr != nil {
			return
		}
		fn(profile)
	})
	if err != nil {
		return &domain.RepositoryError{
			Op:  "StreamProfiles",
			Err: err.Error(),
		}
	}
	return nil
}

func (g *ProfileRepositoryGateway) convertToDomain(row *driver.ProfileRow) (*domain.Profile, error) {
	profileType, err := domain.ParseProfileType(row.ProfileType)
	if err != nil {
		return nil, err
	}
	source, err := domain.ParseSourceType(row.Source)
	if err != nil {
		return nil, err
	}
	return domain.NewProfile(row.ID, row.Name, profileType, source)
}
