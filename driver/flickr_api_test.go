package driver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlickrAPIDriver_RecentPhotos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("method") != "flickr.people.getPublicPhotos" {
			t.Errorf("method = %q, want flickr.people.getPublicPhotos", q.Get("method"))
		}
		if q.Get("user_id") != "61913304@N07" {
			t.Errorf("user_id = %q, want 61913304@N07", q.Get("user_id"))
		}
		if q.Get("per_page") != "500" {
			t.Errorf("per_page = %q, want 500", q.Get("per_page"))
		}
		w.Write([]byte(`{
			"stat": "ok",
			"photos": {
				"photo": [
					{
						"id": "14621522611",
						"owner": "61913304@N07",
						"title": "trade mission",
						"description": {"_content": "a trade mission photo"},
						"tags": "trade commerce",
						"datetaken": "2014-07-09 11:30:00",
						"views": "1200",
						"url_q": "http://flickr_thumbnail1"
					}
				]
			}
		}`))
	}))
	defer server.Close()

	d := NewFlickrAPIDriver(server.Client(), server.URL, "key123")
	photos, err := d.RecentPhotos(context.Background(), "61913304@N07", false, nil)
	if err != nil {
		t.Fatalf("RecentPhotos() error = %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("len(photos) = %d, want 1", len(photos))
	}
	p := photos[0]
	if p.ID != "14621522611" || p.Title != "trade mission" || p.Views != "1200" {
		t.Errorf("unexpected photo fields: %+v", p)
	}
	if p.Description.Content != "a trade mission photo" {
		t.Errorf("Description.Content = %q", p.Description.Content)
	}
}

func TestFlickrAPIDriver_RecentPhotos_GroupOwner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("method") != "flickr.groups.pools.getPhotos" {
			t.Errorf("method = %q, want flickr.groups.pools.getPhotos", q.Get("method"))
		}
		if q.Get("group_id") != "group1" {
			t.Errorf("group_id = %q, want group1", q.Get("group_id"))
		}
		w.Write([]byte(`{"stat": "ok", "photos": {"photo": []}}`))
	}))
	defer server.Close()

	d := NewFlickrAPIDriver(server.Client(), server.URL, "key123")
	if _, err := d.RecentPhotos(context.Background(), "group1", true, nil); err != nil {
		t.Fatalf("RecentPhotos() error = %v", err)
	}
}

func TestFlickrAPIDriver_RecentPhotos_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stat": "fail", "message": "Invalid API Key"}`))
	}))
	defer server.Close()

	d := NewFlickrAPIDriver(server.Client(), server.URL, "bad-key")
	if _, err := d.RecentPhotos(context.Background(), "61913304@N07", false, nil); err == nil {
		t.Errorf("RecentPhotos() error = nil, want error on api failure")
	}
}
