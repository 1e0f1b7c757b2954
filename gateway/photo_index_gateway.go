package gateway

import (
	"context"

	"photo-indexer/domain"
	"photo-indexer/driver"
	"photo-indexer/schema"
)

// SearchDriver is the engine-facing contract the index gateway needs.
type SearchDriver interface {
	EnsureIndex(ctx context.Context) error
	FindByID(ctx context.Context, id string) (*driver.PhotoDocument, bool, error)
	UpsertDocument(ctx context.Context, doc driver.PhotoDocument) error
	Search(ctx context.Context, query string, offset, limit int64) (*driver.RawSearchResponse, error)
}

// PhotoIndexGateway implements the photo index port: it applies the
// analysis schema to canonical records on the way in and routes raw
// query responses through the result translator on the way out.
type PhotoIndexGateway struct {
	driver     SearchDriver
	analysis   *schema.Analysis
	translator *SearchResultTranslator
}

func NewPhotoIndexGateway(searchDriver SearchDriver, analysis *schema.Analysis, translator *SearchResultTranslator) *PhotoIndexGateway {
	return &PhotoIndexGateway{
		driver:     searchDriver,
		analysis:   analysis,
		translator: translator,
	}
}

func (g *PhotoIndexGateway) EnsureIndex(ctx context.Context) error {
	if err := g.driver.EnsureIndex(ctx); err != nil {
		return &domain.SearchEngineError{
			Op:  "EnsureIndex",
			Err: err.Error(),
		}
	}
	return nil
}

func (g *PhotoIndexGateway) Exists(ctx context.Context, id string) (bool, error) {
	_, found, err := g.driver.FindByID(ctx, id)
	if err != nil {
		return false, &domain.SearchEngineError{
			Op:  "Exists",
			Err: err.Error(),
		}
	}
	return found, nil
}

func (g *PhotoIndexGateway) IndexPhoto(ctx context.Context, photo *domain.Photo) error {
	if err := g.driver.UpsertDocument(ctx, g.convertToDocument(photo)); err != nil {
		return &domain.SearchEngineError{
			Op:  "IndexPhoto",
			Err: err.Error(),
		}
	}
	return nil
}

func (g *PhotoIndexGateway) Search(ctx context.Context, query string, offset, limit int64) (*domain.SearchResultSet, error) {
	raw, err := g.driver.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, &domain.SearchEngineError{
			Op:  "Search",
			Err: err.Error(),
		}
	}
	return g.translator.Translate(raw), nil
}

// convertToDocument maps a canonical record to its wire shape. Keyword
// and tag fields go through their analyzers here; the bigram companion
// field is precomputed from the prose fields (copy_to).
func (g *PhotoIndexGateway) convertToDocument(photo *domain.Photo) driver.PhotoDocument {
	tags := make([]string, len(photo.Tags()))
	for i, tag := range photo.Tags() {
		tags[i] = g.analysis.NormalizeTag(tag)
	}

	doc := driver.PhotoDocument{
		ID:           photo.ID(),
		Owner:        g.analysis.NormalizeKeyword(photo.Owner()),
		ProfileType:  g.analysis.NormalizeKeyword(string(photo.ProfileType())),
		SourceType:   photo.Source().DocumentType(),
		Bigram:       append(g.analysis.Bigrams(photo.Title()), g.analysis.Bigrams(photo.Description())...),
		Tags:         tags,
		TakenAt:      photo.TakenAt().Format("2006-01-02"),
		Popularity:   photo.Popularity(),
		URL:          photo.URL(),
		ThumbnailURL: photo.ThumbnailURL(),
		Album:        photo.Album(),
	}

	// Instagram documents carry their text in the caption field; the
	// result translator resolves titles per type accordingly.
	if photo.Source() == domain.SourceInstagram {
		doc.Caption = photo.Title()
	} else {
		doc.Title = photo.Title()
		doc.Description = photo.Description()
	}

	return doc
}
