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

const instagramDefaultBaseURL = "https://api.instagram.com"

// InstagramMedia is one source-native item as returned by the recent
// media endpoint. Caption is kept raw because its shape is not
// guaranteed; the adapter validates it per item.
type InstagramMedia struct {
	ID   string `json:"id"`
	User struct {
		Username string `json:"username"`
	} `json:"user"`
	Tags        []string        `json:"tags"`
	Caption     json.RawMessage `json:"caption"`
	CreatedTime string          `json:"created_time"`
	Likes       struct {
		Count int `json:"count"`
	} `json:"likes"`
	Comments struct {
		Count int `json:"count"`
	} `json:"comments"`
	Link   string `json:"link"`
	Images struct {
		Thumbnail struct {
			URL string `json:"url"`
		} `json:"thumbnail"`
	} `json:"images"`
}

// InstagramAPIDriver fetches recent media over the Instagram HTTP API.
type InstagramAPIDriver struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

func NewInstagramAPIDriver(httpClient *http.Client, baseURL, accessToken string) *InstagramAPIDriver {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = instagramDefaultBaseURL
	}
	return &InstagramAPIDriver{
		httpClient:  httpClient,
		baseURL:     baseURL,
		accessToken: accessToken,
	}
}

// RecentMedia fetches the maximum batch of recent media for one user in
// a single request. A nil minTimestamp requests the unfiltered maximum.
func (d *InstagramAPIDriver) RecentMedia(ctx context.Context, userID string, minTimestamp *int64) ([]InstagramMedia, error) {
	endpoint := fmt.Sprintf("%s/v1/users/%s/media/recent", d.baseURL, url.PathEscape(userID))

	q := url.Values{}
	q.Set("access_token", d.accessToken)
	// count=-1 asks for the API's maximal single page
	q.Set("count", "-1")
	if minTimestamp != nil {
		q.Set("min_timestamp", strconv.FormatInt(*minTimestamp, 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &DriverError{Op: "RecentMedia", Err: err.Error()}
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &DriverError{Op: "RecentMedia", Err: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DriverError{
			Op:  "RecentMedia",
			Err: fmt.Sprintf("unexpected status %d for user %s", resp.StatusCode, userID),
		}
	}

	var body struct {
		Data []InstagramMedia `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &DriverError{Op: "RecentMedia", Err: "malformed response: " + err.Error()}
	}

	return body.Data, nil
}
