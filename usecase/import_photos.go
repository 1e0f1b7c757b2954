package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photo-indexer/domain"
	"photo-indexer/logger"
	"photo-indexer/port"
	"photo-indexer/utils/otel"
)

// ImportPhotosUsecase runs one import batch for one owner on one
// source: fetch the recent items, map each to a canonical record, and
// insert the ones the index does not already hold. Existing records
// always win; re-running a batch is a no-op.
type ImportPhotosUsecase struct {
	adapters map[domain.SourceType]port.SourceAdapter
	profiles port.ProfileRepository
	index    port.PhotoIndex
	now      func() time.Time
}

type ImportResult struct {
	Fetched int
	Indexed int
	Skipped int
	Failed  int
}

func NewImportPhotosUsecase(adapters []port.SourceAdapter, profiles port.ProfileRepository, index port.PhotoIndex) *ImportPhotosUsecase {
	byType := make(map[domain.SourceType]port.SourceAdapter, len(adapters))
	for _, adapter := range adapters {
		byType[adapter.Source()] = adapter
	}
	return &ImportPhotosUsecase{
		adapters: byType,
		profiles: profiles,
		index:    index,
		now:      time.Now,
	}
}

// Execute imports recent photos for one owner. A nil daysAgo asks the
// source for its unfiltered maximum batch. A fetch failure abandons the
// whole batch with a warning and surfaces the error so the caller can
// retry; a failure on one item is logged and skips only that item.
func (u *ImportPhotosUsecase) Execute(ctx context.Context, source domain.SourceType, ownerID string, daysAgo *int) (*ImportResult, error) {
	if ownerID == "" {
		return nil, errors.New("owner ID cannot be empty")
	}

	adapter, ok := u.adapters[source]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for source %q", source)
	}

	profileType := domain.ProfileUser
	if profile, err := u.profiles.GetProfile(ctx, ownerID, source); err == nil && profile != nil {
		profileType = profile.ProfileType()
	}

	var since *time.Time
	if daysAgo != nil {
		cutoff := u.now().AddDate(0, 0, -*daysAgo)
		since = &cutoff
	}

	started := time.Now()
	rawPhotos, err := adapter.FetchRecent(ctx, ownerID, profileType, since)
	if err != nil {
		logger.Logger.Warn("fetch failed, abandoning batch",
			"source", source, "owner", ownerID, "err", err)
		return nil, err
	}

	result := &ImportResult{Fetched: len(rawPhotos)}
	for _, raw := range rawPhotos {
		exists, err := u.index.Exists(ctx, raw.ID())
		if err != nil {
			logger.Logger.Warn("existence check failed, skipping item",
				"source", source, "owner", ownerID, "id", raw.ID(), "err", err)
			result.Failed++
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		photo, err := raw.Photo()
		if err != nil {
			logger.Logger.Warn("item mapping failed, skipping item",
				"source", source, "owner", ownerID, "id", raw.ID(), "err", err)
			result.Failed++
			continue
		}

		if err := u.index.IndexPhoto(ctx, photo); err != nil {
			logger.Logger.Warn("indexing failed, skipping item",
				"source", source, "owner", ownerID, "id", raw.ID(), "err", err)
			result.Failed++
			continue
		}
		result.Indexed++
	}

	otel.RecordImportBatch(ctx,
		int64(result.Indexed), int64(result.Skipped), int64(result.Failed),
		time.Since(started).Seconds())

	logger.Logger.Info("import batch finished",
		"source", source, "owner", ownerID,
		"fetched", result.Fetched, "indexed", result.Indexed,
		"skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}
