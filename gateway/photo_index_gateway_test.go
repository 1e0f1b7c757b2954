package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"photo-indexer/domain"
	"photo-indexer/driver"
	"photo-indexer/schema"
)

type mockSearchDriver struct {
	ensureErr error
	findDoc   *driver.PhotoDocument
	findErr   error
	upserted  []driver.PhotoDocument
	upsertErr error
	searchRaw *driver.RawSearchResponse
	searchErr error
}

func (m *mockSearchDriver) EnsureIndex(ctx context.Context) error {
	return m.ensureErr
}

func (m *mockSearchDriver) FindByID(ctx context.Context, id string) (*driver.PhotoDocument, bool, error) {
	if m.findErr != nil {
		return nil, false, m.findErr
	}
	return m.findDoc, m.findDoc != nil, nil
}

func (m *mockSearchDriver) UpsertDocument(ctx context.Context, doc driver.PhotoDocument) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, doc)
	return nil
}

func (m *mockSearchDriver) Search(ctx context.Context, query string, offset, limit int64) (*driver.RawSearchResponse, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchRaw, nil
}

func newTestAnalysis(t *testing.T) *schema.Analysis {
	t.Helper()
	return schema.NewAnalysis([][]string{{"pictures", "photos"}})
}

func TestIndexPhotoDocumentShape(t *testing.T) {
	mock := &mockSearchDriver{}
	gw := NewPhotoIndexGateway(mock, newTestAnalysis(t), NewSearchResultTranslator())

	takenAt := time.Date(2014, 7, 9, 15, 33, 25, 0, time.UTC)

	flickr, err := domain.NewPhoto(
		"7890", "61913304@N07", domain.ProfileUser, domain.SourceFlickr,
		"Fourth of July parade", "Main street, looking east",
		[]string{"New York", "parade"}, takenAt, 2200,
		"https://www.flickr.com/photos/61913304@N07/7890", "https://farm4.staticflickr.com/7890_q.jpg", "",
	)
	if err != nil {
		t.Fatalf("NewPhoto() error = %v", err)
	}
	if err := gw.IndexPhoto(context.Background(), flickr); err != nil {
		t.Fatalf("IndexPhoto() error = %v", err)
	}

	instagram, err := domain.NewPhoto(
		"123456", "1234", domain.ProfileUser, domain.SourceInstagram,
		"Sunset over the west wing", "",
		nil, takenAt, 3300,
		"http://instagram.com/p/123456", "http://distillery.s3.amazonaws.com/123456_5.jpg", "",
	)
	if err != nil {
		t.Fatalf("NewPhoto() error = %v", err)
	}
	if err := gw.IndexPhoto(context.Background(), instagram); err != nil {
		t.Fatalf("IndexPhoto() error = %v", err)
	}

	if len(mock.upserted) != 2 {
		t.Fatalf("upserted %d documents, want 2", len(mock.upserted))
	}

	flickrDoc := mock.upserted[0]
	if flickrDoc.Owner != "61913304@n07" {
		t.Errorf("Owner = %q, want lowercased keyword", flickrDoc.Owner)
	}
	if flickrDoc.SourceType != "flickr_photo" {
		t.Errorf("SourceType = %q", flickrDoc.SourceType)
	}
	if flickrDoc.Title != "Fourth of July parade" || flickrDoc.Caption != "" {
		t.Errorf("flickr text fields: Title=%q Caption=%q, want title populated", flickrDoc.Title, flickrDoc.Caption)
	}
	if flickrDoc.TakenAt != "2014-07-09" {
		t.Errorf("TakenAt = %q, want date only", flickrDoc.TakenAt)
	}
	if flickrDoc.Album != "61913304@N07:2014-07-09:7890" {
		t.Errorf("Album = %q", flickrDoc.Album)
	}
	if len(flickrDoc.Tags) != 2 || flickrDoc.Tags[0] != "newyork" {
		t.Errorf("Tags = %v, want whitespace-stripped lowercase tags", flickrDoc.Tags)
	}
	if len(flickrDoc.Bigram) == 0 {
		t.Error("Bigram is empty, want shingles of title and description")
	}

	instagramDoc := mock.upserted[1]
	if instagramDoc.Caption != "Sunset over the west wing" || instagramDoc.Title != "" {
		t.Errorf("instagram text fields: Title=%q Caption=%q, want caption populated", instagramDoc.Title, instagramDoc.Caption)
	}
	if instagramDoc.SourceType != "instagram_photo" {
		t.Errorf("SourceType = %q", instagramDoc.SourceType)
	}
}

func TestExists(t *testing.T) {
	mock := &mockSearchDriver{findDoc: &driver.PhotoDocument{ID: "123456"}}
	gw := NewPhotoIndexGateway(mock, newTestAnalysis(t), NewSearchResultTranslator())

	found, err := gw.Exists(context.Background(), "123456")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !found {
		t.Error("Exists() = false, want true")
	}

	mock.findDoc = nil
	found, err = gw.Exists(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if found {
		t.Error("Exists() = true, want false")
	}
}

func TestSearchWrapsEngineError(t *testing.T) {
	mock := &mockSearchDriver{searchErr: errors.New("engine down")}
	gw := NewPhotoIndexGateway(mock, newTestAnalysis(t), NewSearchResultTranslator())

	_, err := gw.Search(context.Background(), "parade", 0, 20)
	if err == nil {
		t.Fatal("Search() error = nil, want error")
	}
	var engineErr *domain.SearchEngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("Search() error type = %T, want *domain.SearchEngineError", err)
	}
	if engineErr.Op != "Search" {
		t.Errorf("Op = %q, want Search", engineErr.Op)
	}
}

func TestSearchTranslatesRawResponse(t *testing.T) {
	mock := &mockSearchDriver{
		searchRaw: &driver.RawSearchResponse{
			Hits: driver.RawHits{
				Total: 1,
				Hits: []driver.RawHit{
					{
						Type:   "instagram_photo",
						Source: map[string]interface{}{"caption": "sunset"},
					},
				},
			},
		},
	}
	gw := NewPhotoIndexGateway(mock, newTestAnalysis(t), NewSearchResultTranslator())

	set, err := gw.Search(context.Background(), "sunset", 0, 20)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if set.Total != 1 || len(set.Results) != 1 {
		t.Fatalf("set = %+v, want one result", set)
	}
	if set.Results[0].Title != "sunset" {
		t.Errorf("Title = %q, want caption value", set.Results[0].Title)
	}
}
