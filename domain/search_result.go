package domain

import "time"

// SearchResult is one typed hit from the index. Type is the readable
// form of the document's source-type tag, e.g. "InstagramPhoto".
type SearchResult struct {
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	TakenAt      time.Time `json:"taken_at"`
}

// Suggestion is a "did you mean" correction surfaced alongside results.
// The engine's relevance score is stripped before it reaches callers.
type Suggestion struct {
	Text        string `json:"text"`
	Highlighted string `json:"highlighted"`
}

// SearchResultSet is the translated response for one query. Built fresh
// per query; only the suggestion may be replaced after construction.
type SearchResultSet struct {
	Total      int64          `json:"total"`
	Offset     int64          `json:"offset"`
	Results    []SearchResult `json:"results"`
	Suggestion *Suggestion    `json:"suggestion,omitempty"`
}

// OverrideSuggestion replaces the computed suggestion, e.g. to suppress
// a low-quality auto-suggestion with an externally computed one.
func (s *SearchResultSet) OverrideSuggestion(suggestion *Suggestion) {
	s.Suggestion = suggestion
}
