package gateway

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"photo-indexer/domain"
	"photo-indexer/driver"
	"photo-indexer/port"
)

const flickrDateTakenLayout = "2006-01-02 15:04:05"

// FlickrAdapter implements the source adapter port over the Flickr API
// driver.
type FlickrAdapter struct {
	driver *driver.FlickrAPIDriver
}

func NewFlickrAdapter(apiDriver *driver.FlickrAPIDriver) *FlickrAdapter {
	return &FlickrAdapter{driver: apiDriver}
}

func (a *FlickrAdapter) Source() domain.SourceType {
	return domain.SourceFlickr
}

// FetchRecent fetches the maximal recent batch for one owner. Group
// profiles go through the group pool endpoint.
func (a *FlickrAdapter) FetchRecent(ctx context.Context, ownerID string, profileType domain.ProfileType, since *time.Time) ([]port.RawPhoto, error) {
	var minUploadDate *int64
	if since != nil {
		ts := since.Unix()
		minUploadDate = &ts
	}

	items, err := a.driver.RecentPhotos(ctx, ownerID, profileType == domain.ProfileGroup, minUploadDate)
	if err != nil {
		return nil, &domain.AdapterError{
			Source: domain.SourceFlickr,
			Err:    err.Error(),
		}
	}

	raw := make([]port.RawPhoto, 0, len(items))
	for _, item := range items {
		raw = append(raw, &flickrRawPhoto{item: item, ownerID: ownerID, profileType: profileType})
	}
	return raw, nil
}

// flickrRawPhoto maps one listing item to a canonical record. In group
// pools the item owner is the uploading user, so the record carries the
// requested owner id to keep ownership scoping consistent.
type flickrRawPhoto struct {
	item        driver.FlickrPhotoItem
	ownerID     string
	profileType domain.ProfileType
}

func (r *flickrRawPhoto) ID() string {
	return r.item.ID
}

func (r *flickrRawPhoto) Photo() (*domain.Photo, error) {
	takenAt, err := time.Parse(flickrDateTakenLayout, r.item.DateTaken)
	if err != nil {
		return nil, &domain.AdapterError{
			Source: domain.SourceFlickr,
			ItemID: r.item.ID,
			Err:    "invalid datetaken: " + err.Error(),
		}
	}

	popularity, err := strconv.Atoi(r.item.Views)
	if err != nil {
		return nil, &domain.AdapterError{
			Source: domain.SourceFlickr,
			ItemID: r.item.ID,
			Err:    "invalid views: " + err.Error(),
		}
	}

	// Flickr tags arrive space-delimited in one string.
	tags := strings.Fields(r.item.Tags)

	pageURL := fmt.Sprintf("https://www.flickr.com/photos/%s/%s", r.item.Owner, r.item.ID)

	photo, err := domain.NewPhoto(
		r.item.ID,
		r.ownerID,
		r.profileType,
		domain.SourceFlickr,
		r.item.Title,
		r.item.Description.Content,
		tags,
		takenAt.UTC(),
		popularity,
		pageURL,
		r.item.ThumbnailURL,
		"",
	)
	if err != nil {
		return nil, &domain.AdapterError{
			Source: domain.SourceFlickr,
			ItemID: r.item.ID,
			Err:    err.Error(),
		}
	}
	return photo, nil
}
