package domain

import "errors"

// Profile is a registered photo owner on one upstream source. The id is
// source-scoped and immutable; name and profile type may change across
// re-registrations.
type Profile struct {
	id          string
	name        string
	profileType ProfileType
	source      SourceType
}

func NewProfile(id, name string, profileType ProfileType, source SourceType) (*Profile, error) {
	if id == "" {
		return nil, errors.New("profile ID cannot be empty")
	}
	if name == "" {
		return nil, errors.New("profile name cannot be empty")
	}
	if profileType != ProfileUser && profileType != ProfileGroup {
		return nil, errors.New("profile type must be user or group")
	}
	if source != SourceInstagram && source != SourceFlickr {
		return nil, errors.New("profile source is not a known source type")
	}

	return &Profile{
		id:          id,
		name:        name,
		profileType: profileType,
		source:      source,
	}, nil
}

func (p *Profile) ID() string {
	return p.id
}

func (p *Profile) Name() string {
	return p.name
}

func (p *Profile) ProfileType() ProfileType {
	return p.profileType
}

func (p *Profile) Source() SourceType {
	return p.source
}
