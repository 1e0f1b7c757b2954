package driver

// PhotoDocument is the wire shape of one indexed photo. Instagram-
// sourced documents carry their text in the caption field, everything
// else in title/description; the bigram field holds precomputed
// adjacent-token shingles of that text.
type PhotoDocument struct {
	ID           string   `json:"id"`
	Owner        string   `json:"owner"`
	ProfileType  string   `json:"profile_type"`
	SourceType   string   `json:"source_type"`
	Title        string   `json:"title,omitempty"`
	Caption      string   `json:"caption,omitempty"`
	Description  string   `json:"description,omitempty"`
	Bigram       []string `json:"bigram"`
	Tags         []string `json:"tags"`
	TakenAt      string   `json:"taken_at"`
	Popularity   int      `json:"popularity"`
	URL          string   `json:"url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Album        string   `json:"album"`
}

// RawSearchResponse is the engine's untranslated query response: a
// hit-summary section and an optional "did you mean" suggest section.
// The result translator turns it into a typed result set.
type RawSearchResponse struct {
	Hits    RawHits                 `json:"hits"`
	Suggest map[string][]RawSuggest `json:"suggest,omitempty"`
}

type RawHits struct {
	Total  int64    `json:"total"`
	Offset int64    `json:"offset"`
	Hits   []RawHit `json:"hits"`
}

type RawHit struct {
	Type   string                 `json:"_type"`
	Source map[string]interface{} `json:"_source"`
}

type RawSuggest struct {
	Text    string                   `json:"text"`
	Options []map[string]interface{} `json:"options"`
}

// DriverError represents an error from the driver layer.
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
