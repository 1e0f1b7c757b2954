package usecase

import (
	"context"

	"photo-indexer/domain"
	"photo-indexer/port"
)

// ListProfilesUsecase lists the registered profiles for one source.
type ListProfilesUsecase struct {
	profiles port.ProfileRepository
}

func NewListProfilesUsecase(profiles port.ProfileRepository) *ListProfilesUsecase {
	return &ListProfilesUsecase{profiles: profiles}
}

func (u *ListProfilesUsecase) Execute(ctx context.Context, source domain.SourceType) ([]*domain.Profile, error) {
	return u.profiles.ListProfiles(ctx, source)
}
