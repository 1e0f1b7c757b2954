package gateway

import (
	"testing"
	"time"

	"photo-indexer/driver"
)

func TestTranslateTitleResolution(t *testing.T) {
	translator := NewSearchResultTranslator()

	raw := &driver.RawSearchResponse{
		Hits: driver.RawHits{
			Total:  2,
			Offset: 10,
			Hits: []driver.RawHit{
				{
					Type: "instagram_photo",
					Source: map[string]interface{}{
						"title":         "should not be used",
						"caption":       "sunset over the bay",
						"url":           "http://instagram.com/p/123456",
						"thumbnail_url": "http://distillery.s3.amazonaws.com/123456_5.jpg",
						"taken_at":      "2014-07-09",
					},
				},
				{
					Type: "flickr_photo",
					Source: map[string]interface{}{
						"title":         "parade on main street",
						"url":           "https://www.flickr.com/photos/61913304@n07/7890",
						"thumbnail_url": "https://farm4.staticflickr.com/7890_q.jpg",
						"taken_at":      "2014-07-22",
					},
				},
			},
		},
	}

	set := translator.Translate(raw)

	if set.Total != 2 {
		t.Errorf("Total = %d, want 2", set.Total)
	}
	if set.Offset != 10 {
		t.Errorf("Offset = %d, want 10", set.Offset)
	}
	if len(set.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(set.Results))
	}

	first := set.Results[0]
	if first.Type != "InstagramPhoto" {
		t.Errorf("Results[0].Type = %q, want %q", first.Type, "InstagramPhoto")
	}
	if first.Title != "sunset over the bay" {
		t.Errorf("Results[0].Title = %q, want caption text", first.Title)
	}
	if !first.TakenAt.Equal(time.Date(2014, 7, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Results[0].TakenAt = %v, want 2014-07-09", first.TakenAt)
	}

	second := set.Results[1]
	if second.Type != "FlickrPhoto" {
		t.Errorf("Results[1].Type = %q, want %q", second.Type, "FlickrPhoto")
	}
	if second.Title != "parade on main street" {
		t.Errorf("Results[1].Title = %q, want title text", second.Title)
	}
	if set.Suggestion != nil {
		t.Errorf("Suggestion = %v, want nil without a suggest section", set.Suggestion)
	}
}

func TestTranslateRegisteredTitleField(t *testing.T) {
	translator := NewSearchResultTranslator()
	translator.RegisterTitleField("FlickrPhoto", "description")

	raw := &driver.RawSearchResponse{
		Hits: driver.RawHits{
			Total: 1,
			Hits: []driver.RawHit{
				{
					Type: "flickr_photo",
					Source: map[string]interface{}{
						"title":       "plain title",
						"description": "richer description",
					},
				},
			},
		},
	}

	set := translator.Translate(raw)
	if set.Results[0].Title != "richer description" {
		t.Errorf("Title = %q, want registered field value", set.Results[0].Title)
	}
}

func TestExtractSuggestion(t *testing.T) {
	tests := []struct {
		name            string
		suggest         map[string][]driver.RawSuggest
		wantText        string
		wantHighlighted string
		wantNil         bool
	}{
		{
			name: "score is stripped",
			suggest: map[string][]driver.RawSuggest{
				"suggestion": {
					{
						Text: "presidant",
						Options: []map[string]interface{}{
							{
								"text":        "president",
								"highlighted": "<em>president</em>",
								"score":       0.87,
							},
						},
					},
				},
			},
			wantText:        "president",
			wantHighlighted: "<em>president</em>",
		},
		{
			name: "highlighting optional",
			suggest: map[string][]driver.RawSuggest{
				"suggestion": {
					{Options: []map[string]interface{}{{"text": "president"}}},
				},
			},
			wantText: "president",
		},
		{
			name:    "no suggest section",
			suggest: nil,
			wantNil: true,
		},
		{
			name: "empty entries",
			suggest: map[string][]driver.RawSuggest{
				"suggestion": {},
			},
			wantNil: true,
		},
		{
			name: "no options",
			suggest: map[string][]driver.RawSuggest{
				"suggestion": {{Text: "presidant"}},
			},
			wantNil: true,
		},
		{
			name: "option text wrong type",
			suggest: map[string][]driver.RawSuggest{
				"suggestion": {
					{Options: []map[string]interface{}{{"text": 42}}},
				},
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractSuggestion(tt.suggest)
			if tt.wantNil {
				if got != nil {
					t.Errorf("extractSuggestion() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("extractSuggestion() = nil, want suggestion")
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Highlighted != tt.wantHighlighted {
				t.Errorf("Highlighted = %q, want %q", got.Highlighted, tt.wantHighlighted)
			}
		})
	}
}

func TestCamelize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"instagram_photo", "InstagramPhoto"},
		{"flickr_photo", "FlickrPhoto"},
		{"photo", "Photo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := camelize(tt.in); got != tt.want {
			t.Errorf("camelize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
