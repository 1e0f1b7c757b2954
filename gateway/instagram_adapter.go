package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"photo-indexer/domain"
	"photo-indexer/driver"
	"photo-indexer/port"
)

// InstagramAdapter implements the source adapter port over the
// Instagram API driver.
type InstagramAdapter struct {
	driver *driver.InstagramAPIDriver
}

func NewInstagramAdapter(apiDriver *driver.InstagramAPIDriver) *InstagramAdapter {
	return &InstagramAdapter{driver: apiDriver}
}

func (a *InstagramAdapter) Source() domain.SourceType {
	return domain.SourceInstagram
}

// FetchRecent fetches the maximal recent batch for one owner. Instagram
// has no group endpoint, so profileType is ignored.
func (a *InstagramAdapter) FetchRecent(ctx context.Context, ownerID string, _ domain.ProfileType, since *time.Time) ([]port.RawPhoto, error) {
	var minTimestamp *int64
	if since != nil {
		ts := since.Unix()
		minTimestamp = &ts
	}

	media, err := a.driver.RecentMedia(ctx, ownerID, minTimestamp)
	if err != nil {
		return nil, &domain.AdapterError{
			Source: domain.SourceInstagram,
			Err:    err.Error(),
		}
	}

	raw := make([]port.RawPhoto, 0, len(media))
	for _, m := range media {
		raw = append(raw, &instagramRawPhoto{media: m, ownerID: ownerID})
	}
	return raw, nil
}

// instagramRawPhoto maps one media item to a canonical record. The
// owner on the record is the requested profile id, not the media's
// username.
type instagramRawPhoto struct {
	media   driver.InstagramMedia
	ownerID string
}

func (r *instagramRawPhoto) ID() string {
	return r.media.ID
}

func (r *instagramRawPhoto) Photo() (*domain.Photo, error) {
	caption, err := r.captionText()
	if err != nil {
		return nil, &domain.AdapterError{
			Source: domain.SourceInstagram,
			ItemID: r.media.ID,
			Err:    err.Error(),
		}
	}

	takenAt, err := parseEpochString(r.media.CreatedTime)
	if err != nil {
		return nil, &domain.AdapterError{
			Source: domain.SourceInstagram,
			ItemID: r.media.ID,
			Err:    "invalid created_time: " + err.Error(),
		}
	}

	popularity := r.media.Likes.Count + r.media.Comments.Count

	photo, err := domain.NewPhoto(
		r.media.ID,
		r.ownerID,
		domain.ProfileUser,
		domain.SourceInstagram,
		caption,
		"",
		r.media.Tags,
		takenAt,
		popularity,
		r.media.Link,
		r.media.Images.Thumbnail.URL,
		"",
	)
	if err != nil {
		return nil, &domain.AdapterError{
			Source: domain.SourceInstagram,
			ItemID: r.media.ID,
			Err:    err.Error(),
		}
	}
	return photo, nil
}

// captionText validates the caption shape before use. The API is not
// consistent here: a caption can be an object, null, or something else
// entirely, and a bad shape must only fail this one item.
func (r *instagramRawPhoto) captionText() (string, error) {
	if len(r.media.Caption) == 0 || string(r.media.Caption) == "null" {
		return "", fmt.Errorf("caption is missing")
	}
	var caption struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(r.media.Caption, &caption); err != nil {
		return "", fmt.Errorf("malformed caption: %s", err.Error())
	}
	if caption.Text == "" {
		return "", fmt.Errorf("caption text is empty")
	}
	return caption.Text, nil
}

func parseEpochString(s string) (time.Time, error) {
	epoch, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(epoch, 0).UTC(), nil
}
