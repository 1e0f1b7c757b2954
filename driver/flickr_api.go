package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const flickrDefaultBaseURL = "https://api.flickr.com"

// flickrExtras are the per-photo fields requested beyond the defaults.
const flickrExtras = "description,date_taken,date_upload,views,tags,url_q"

// FlickrPhotoItem is one source-native item from the Flickr photo
// listing endpoints.
type FlickrPhotoItem struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Description struct {
		Content string `json:"_content"`
	} `json:"description"`
	Tags         string `json:"tags"`
	DateTaken    string `json:"datetaken"`
	Views        string `json:"views"`
	ThumbnailURL string `json:"url_q"`
}

// FlickrAPIDriver fetches recent photos over the Flickr REST API for
// user and group owners.
type FlickrAPIDriver struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewFlickrAPIDriver(httpClient *http.Client, baseURL, apiKey string) *FlickrAPIDriver {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = flickrDefaultBaseURL
	}
	return &FlickrAPIDriver{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// RecentPhotos fetches the maximum batch of recent photos for one owner
// in a single request. Group owners go through the group pool endpoint.
// A nil minUploadDate requests the unfiltered maximum.
func (d *FlickrAPIDriver) RecentPhotos(ctx context.Context, ownerID string, group bool, minUploadDate *int64) ([]FlickrPhotoItem, error) {
	q := url.Values{}
	if group {
		q.Set("method", "flickr.groups.pools.getPhotos")
		q.Set("group_id", ownerID)
	} else {
		q.Set("method", "flickr.people.getPublicPhotos")
		q.Set("user_id", ownerID)
	}
	q.Set("api_key", d.apiKey)
	q.Set("format", "json")
	q.Set("nojsoncallback", "1")
	// per_page=500 is the API's maximal single page
	q.Set("per_page", "500")
	q.Set("extras", flickrExtras)
	if minUploadDate != nil {
		q.Set("min_upload_date", strconv.FormatInt(*minUploadDate, 10))
	}

	endpoint := d.baseURL + "/services/rest/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &DriverError{Op: "RecentPhotos", Err: err.Error()}
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &DriverError{Op: "RecentPhotos", Err: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DriverError{
			Op:  "RecentPhotos",
			Err: fmt.Sprintf("unexpected status %d for owner %s", resp.StatusCode, ownerID),
		}
	}

	var body struct {
		Stat    string `json:"stat"`
		Message string `json:"message"`
		Photos  struct {
			Photo []FlickrPhotoItem `json:"photo"`
		} `json:"photos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &DriverError{Op: "RecentPhotos", Err: "malformed response: " + err.Error()}
	}
	if body.Stat != "ok" {
		return nil, &DriverError{
			Op:  "RecentPhotos",
			Err: fmt.Sprintf("api error for owner %s: %s", ownerID, body.Message),
		}
	}

	return body.Photos.Photo, nil
}
