package entities

import (
	"strings"
	"time"

	pkgerrors "campaign-manager/pkg/errors"
)

// Profile is a scraped professional profile used as a campaign lead.
type Profile struct {
	id         string
	name       string
	jobTitle   string
	company    string
	location   string
	summary    string
	profileURL string
	createdAt  time.Time
	updatedAt  time.Time
}

// ProfileFields carries the raw attributes of a profile
type ProfileFields struct {
	Name       string
	JobTitle   string
	Company    string
	Location   string
	Summary    string
	ProfileURL string
}

// Missing returns the names of required attributes that are blank.
func (f ProfileFields) Missing() []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"name", f.Name},
		{"job_title", f.JobTitle},
		{"company", f.Company},
		{"location", f.Location},
		{"summary", f.Summary},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// NewProfile validates f and stamps the creation time.
func NewProfile(f ProfileFields, now time.Time) (*Profile, error) {
	if missing := f.Missing(); len(missing) > 0 {
		return nil, pkgerrors.NewValidationError("Missing fields: "+strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}
	return &Profile{
		name:       f.Name,
		jobTitle:   f.JobTitle,
		company:    f.Company,
		location:   f.Location,
		summary:    f.Summary,
		profileURL: strings.TrimSpace(f.ProfileURL),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructProfile rebuilds a stored profile
func ReconstructProfile(id string, f ProfileFields, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		id:         id,
		name:       f.Name,
		jobTitle:   f.JobTitle,
		company:    f.Company,
		location:   f.Location,
		summary:    f.Summary,
		profileURL: f.ProfileURL,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// AssignID records the store-generated identifier
func (p *Profile) AssignID(id string) { p.id = id }

func (p *Profile) ID() string           { return p.id }
func (p *Profile) Name() string         { return p.name }
func (p *Profile) JobTitle() string     { return p.jobTitle }
func (p *Profile) Company() string      { return p.company }
func (p *Profile) Location() string     { return p.location }
func (p *Profile) Summary() string      { return p.summary }
func (p *Profile) ProfileURL() string   { return p.profileURL }
func (p *Profile) CreatedAt() time.Time { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time { return p.updatedAt }

// Fields returns the raw attributes
func (p *Profile) Fields() ProfileFields {
	return ProfileFields{
		Name:       p.name,
		JobTitle:   p.jobTitle,
		Company:    p.company,
		Location:   p.location,
		Summary:    p.summary,
		ProfileURL: p.profileURL,
	}
}

// Matches reports whether term occurs, case-insensitively, in the name,
// company, job title or location. An empty term matches everything.
func (p *Profile) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, v := range []string{p.name, p.company, p.jobTitle, p.location} {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}
