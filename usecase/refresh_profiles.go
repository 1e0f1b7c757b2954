package usecase

import (
	"context"
	"errors"

	"photo-indexer/domain"
	"photo-indexer/logger"
	"photo-indexer/port"
)

// DaysBackToCheckForUpdates is the fixed lookback window a refresh
// sweep hands to every enqueued import job.
const DaysBackToCheckForUpdates = 30

// RefreshProfilesUsecase sweeps every registered profile and enqueues
// one lookback-bounded import job per profile. Profiles are streamed,
// never loaded wholesale.
type RefreshProfilesUsecase struct {
	profiles port.ProfileRepository
	queue    port.JobQueue
}

type RefreshResult struct {
	Enqueued int
	Failed   int
}

func NewRefreshProfilesUsecase(profiles port.ProfileRepository, queue port.JobQueue) *RefreshProfilesUsecase {
	return &RefreshProfilesUsecase{
		profiles: profiles,
		queue:    queue,
	}
}

// Execute fans out one import job per registered profile across all
// sources. An enqueue failure is logged and does not stop the sweep; a
// stream failure on one source does not stop the other sources.
func (u *RefreshProfilesUsecase) Execute(ctx context.Context) (*RefreshResult, error) {
	result := &RefreshResult{}
	var streamErrs []error

	for _, source := range []domain.SourceType{domain.SourceInstagram, domain.SourceFlickr} {
		err := u.profiles.StreamProfiles(ctx, source, func(profile *domain.Profile) {
			daysAgo := DaysBackToCheckForUpdates
			job := domain.ImportJob{
				OwnerID:     profile.ID(),
				Source:      profile.Source(),
				ProfileType: profile.ProfileType(),
				DaysAgo:     &daysAgo,
			}
			if err := u.queue.Enqueue(ctx, job); err != nil {
				logger.Logger.Warn("enqueue failed during refresh sweep",
					"source", source, "owner", profile.ID(), "err", err)
				result.Failed++
				return
			}
			result.Enqueued++
		})
		if err != nil {
			logger.Logger.Error("profile stream failed during refresh sweep",
				"source", source, "err", err)
			streamErrs = append(streamErrs, err)
		}
	}

	logger.Logger.Info("refresh sweep finished",
		"enqueued", result.Enqueued, "failed", result.Failed)
	return result, errors.Join(streamErrs...)
}
