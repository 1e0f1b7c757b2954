package domain

import "fmt"

// SourceType identifies the upstream photo service a record came from.
type SourceType string

const (
	SourceInstagram SourceType = "instagram"
	SourceFlickr    SourceType = "flickr"
)

// ParseSourceType converts a wire-level source string to a SourceType.
func ParseSourceType(s string) (SourceType, error) {
	switch SourceType(s) {
	case SourceInstagram, SourceFlickr:
		return SourceType(s), nil
	default:
		return "", fmt.Errorf("unknown source type: %q", s)
	}
}

// DocumentType returns the type tag stored on indexed documents,
// e.g. "instagram_photo".
func (s SourceType) DocumentType() string {
	return string(s) + "_photo"
}

// ProfileType distinguishes user-owned and group-owned profiles.
type ProfileType string

const (
	ProfileUser  ProfileType = "user"
	ProfileGroup ProfileType = "group"
)

// ParseProfileType converts a wire-level profile type string to a ProfileType.
func ParseProfileType(s string) (ProfileType, error) {
	switch ProfileType(s) {
	case ProfileUser, ProfileGroup:
		return ProfileType(s), nil
	default:
		return "", fmt.Errorf("unknown profile type: %q", s)
	}
}
