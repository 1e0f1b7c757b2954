package usecase

import (
	"context"

	"photo-indexer/domain"
	"photo-indexer/logger"
	"photo-indexer/port"
)

// RegisterProfileUsecase registers a photo owner and kicks off its
// first import, which fetches the source's unfiltered maximum batch.
type RegisterProfileUsecase struct {
	profiles port.ProfileRepository
	queue    port.JobQueue
}

func NewRegisterProfileUsecase(profiles port.ProfileRepository, queue port.JobQueue) *RegisterProfileUsecase {
	return &RegisterProfileUsecase{
		profiles: profiles,
		queue:    queue,
	}
}

// Execute stores the profile and enqueues an unbounded first import.
// Registration succeeds even when the enqueue fails; the next refresh
// sweep picks the profile up.
func (u *RegisterProfileUsecase) Execute(ctx context.Context, id, name string, profileType domain.ProfileType, source domain.SourceType) (*domain.Profile, error) {
	profile, err := domain.NewProfile(id, name, profileType, source)
	if err != nil {
		return nil, err
	}

	if err := u.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	job := domain.ImportJob{
		OwnerID:     profile.ID(),
		Source:      profile.Source(),
		ProfileType: profile.ProfileType(),
	}
	if err := u.queue.Enqueue(ctx, job); err != nil {
		logger.Logger.Warn("first import enqueue failed",
			"source", source, "owner", id, "err", err)
	}

	return profile, nil
}
