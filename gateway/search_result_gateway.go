package gateway

import (
	"strings"
	"time"

	"photo-indexer/domain"
	"photo-indexer/driver"
)

// SearchResultTranslator converts raw engine responses into typed
// result sets. Title resolution is type-dependent and table-driven:
// adding a source type is a RegisterTitleField call, not a new branch.
type SearchResultTranslator struct {
	titleFields map[string]string
}

func NewSearchResultTranslator() *SearchResultTranslator {
	return &SearchResultTranslator{
		titleFields: map[string]string{
			"InstagramPhoto": "caption",
		},
	}
}

// RegisterTitleField maps a result type to the source field its title
// is read from. Types without an entry read from "title".
func (t *SearchResultTranslator) RegisterTitleField(resultType, field string) {
	t.titleFields[resultType] = field
}

// Translate builds a SearchResultSet from the raw hit/suggest
// structure. It always returns a well-formed set: malformed suggestion
// payloads yield no suggestion instead of an error.
func (t *SearchResultTranslator) Translate(raw *driver.RawSearchResponse) *domain.SearchResultSet {
	set := &domain.SearchResultSet{
		Total:   raw.Hits.Total,
		Offset:  raw.Hits.Offset,
		Results: make([]domain.SearchResult, 0, len(raw.Hits.Hits)),
	}

	for _, hit := range raw.Hits.Hits {
		resultType := camelize(hit.Type)
		set.Results = append(set.Results, domain.SearchResult{
			Type:         resultType,
			Title:        getString(hit.Source, t.titleField(resultType)),
			URL:          getString(hit.Source, "url"),
			ThumbnailURL: getString(hit.Source, "thumbnail_url"),
			TakenAt:      parseTakenAt(getString(hit.Source, "taken_at")),
		})
	}

	set.Suggestion = extractSuggestion(raw.Suggest)
	return set
}

func (t *SearchResultTranslator) titleField(resultType string) string {
	if field, ok := t.titleFields[resultType]; ok {
		return field
	}
	return "title"
}

// extractSuggestion takes the first suggestion's first option, strips
// its relevance score and exposes the corrected text plus highlighting.
// Any missing nested field fails soft to no suggestion.
func extractSuggestion(suggest map[string][]driver.RawSuggest) *domain.Suggestion {
	entries, ok := suggest["suggestion"]
	if !ok || len(entries) == 0 {
		return nil
	}

	options := entries[0].Options
	if len(options) == 0 {
		return nil
	}

	option := options[0]
	text, ok := option["text"].(string)
	if !ok || text == "" {
		return nil
	}
	highlighted, _ := option["highlighted"].(string)

	return &domain.Suggestion{
		Text:        text,
		Highlighted: highlighted,
	}
}

// camelize turns a document type tag into its readable form,
// e.g. "instagram_photo" -> "InstagramPhoto".
func camelize(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

func parseTakenAt(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts
	}
	return time.Time{}
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
