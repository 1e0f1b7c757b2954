package usecase

import (
	"context"
	"errors"
	"time"

	"photo-indexer/domain"
	"photo-indexer/port"
	"photo-indexer/utils"
	"photo-indexer/utils/otel"
)

const maxSearchLimit = 100

// SearchPhotosUsecase validates and sanitizes a query, then runs it
// against the photo index.
type SearchPhotosUsecase struct {
	index     port.PhotoIndex
	sanitizer *utils.QuerySanitizer
}

func NewSearchPhotosUsecase(index port.PhotoIndex) *SearchPhotosUsecase {
	return &SearchPhotosUsecase{
		index:     index,
		sanitizer: utils.NewQuerySanitizer(utils.DefaultSecurityConfig()),
	}
}

func (u *SearchPhotosUsecase) Execute(ctx context.Context, query string, offset, limit int64) (*domain.SearchResultSet, error) {
	if query == "" {
		return nil, errors.New("query cannot be empty")
	}
	if offset < 0 {
		return nil, errors.New("offset cannot be negative")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be greater than 0")
	}
	if limit > maxSearchLimit {
		return nil, errors.New("limit too large")
	}

	if err := u.sanitizer.ValidateQuery(ctx, query); err != nil {
		return nil, err
	}
	sanitized, err := u.sanitizer.SanitizeQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	// A query that sanitizes to nothing matches nothing.
	if sanitized == "" {
		return &domain.SearchResultSet{
			Offset:  offset,
			Results: []domain.SearchResult{},
		}, nil
	}

	started := time.Now()
	set, err := u.index.Search(ctx, sanitized, offset, limit)
	if err != nil {
		return nil, err
	}
	otel.RecordSearchDuration(ctx, time.Since(started).Seconds())
	return set, nil
}
