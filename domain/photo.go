package domain

import (
	"errors"
	"strings"
	"time"
)

// Photo is the canonical, source-independent representation of an
// ingested item. The id is source-native and immutable once created;
// popularity is derived from the source's engagement signals at import
// time and never independently mutated.
type Photo struct {
	id           string
	owner        string
	profileType  ProfileType
	source       SourceType
	title        string
	description  string
	tags         []string
	takenAt      time.Time
	popularity   int
	url          string
	thumbnailURL string
	album        string
}

func NewPhoto(id, owner string, profileType ProfileType, source SourceType, title, description string, tags []string, takenAt time.Time, popularity int, url, thumbnailURL, album string) (*Photo, error) {
	if id == "" {
		return nil, errors.New("photo ID cannot be empty")
	}
	if owner == "" {
		return nil, errors.New("photo owner cannot be empty")
	}
	if source != SourceInstagram && source != SourceFlickr {
		return nil, errors.New("photo source is not a known source type")
	}
	if profileType == "" {
		profileType = ProfileUser
	}
	if title == "" {
		return nil, errors.New("photo title cannot be empty")
	}

	p := &Photo{
		id:           id,
		owner:        owner,
		profileType:  profileType,
		source:       source,
		title:        title,
		description:  description,
		tags:         tags,
		takenAt:      takenAt,
		popularity:   popularity,
		url:          url,
		thumbnailURL: thumbnailURL,
		album:        album,
	}
	if p.album == "" {
		p.album = p.AlbumName()
	}
	return p, nil
}

func (p *Photo) ID() string {
	return p.id
}

func (p *Photo) Owner() string {
	return p.owner
}

func (p *Photo) ProfileType() ProfileType {
	return p.profileType
}

func (p *Photo) Source() SourceType {
	return p.source
}

func (p *Photo) Title() string {
	return p.title
}

func (p *Photo) Description() string {
	return p.description
}

func (p *Photo) Tags() []string {
	return p.tags
}

func (p *Photo) TakenAt() time.Time {
	return p.takenAt
}

func (p *Photo) Popularity() int {
	return p.popularity
}

func (p *Photo) URL() string {
	return p.url
}

func (p *Photo) ThumbnailURL() string {
	return p.thumbnailURL
}

func (p *Photo) Album() string {
	return p.album
}

// AlbumName derives a stable album identifier from the owner, the
// taken-at date and the photo id.
func (p *Photo) AlbumName() string {
	return strings.Join([]string{p.owner, p.takenAt.Format("2006-01-02"), p.id}, ":")
}

func (p *Photo) HasTag(tag string) bool {
	if tag == "" {
		return false
	}

	for _, t := range p.tags {
		if t == tag {
			return true
		}
	}
	return false
}
