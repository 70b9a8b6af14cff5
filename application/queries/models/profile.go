package models

import (
	"time"

	"campaign-manager/domain/core/entities"
	"campaign-manager/pkg/common"
)

// ProfileView is the read model of a scraped profile
type ProfileView struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	JobTitle   string    `json:"job_title"`
	Company    string    `json:"company"`
	Location   string    `json:"location"`
	Summary    string    `json:"summary"`
	ProfileURL string    `json:"profile_url,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewProfileView converts a profile entity into its read model
func NewProfileView(p *entities.Profile) ProfileView {
	return ProfileView{
		ID:         p.ID(),
		Name:       p.Name(),
		JobTitle:   p.JobTitle(),
		Company:    p.Company(),
		Location:   p.Location(),
		Summary:    p.Summary(),
		ProfileURL: p.ProfileURL(),
		CreatedAt:  p.CreatedAt(),
	}
}

// ProfileList is one page of profiles
type ProfileList struct {
	Profiles   []ProfileView         `json:"profiles"`
	Pagination common.PaginationInfo `json:"pagination"`
}
