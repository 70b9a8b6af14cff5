package models

import (
	"time"

	"campaign-manager/domain/core/entities"
	"campaign-manager/pkg/common"
)

// CampaignView is the read model of a campaign. Cached copies are shared
// between requests and must not be modified.
type CampaignView struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Leads       []string  `json:"leads"`
	AccountIDs  []string  `json:"accountIDs"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewCampaignView converts a campaign entity into its read model
func NewCampaignView(c *entities.Campaign) CampaignView {
	return CampaignView{
		ID:          c.ID().String(),
		Name:        c.Name(),
		Description: c.Description(),
		Status:      c.Status().String(),
		Leads:       c.Leads(),
		AccountIDs:  c.AccountIDs(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

// CampaignList is one page of campaigns with its pagination envelope
type CampaignList struct {
	Campaigns  []CampaignView        `json:"campaigns"`
	Pagination common.PaginationInfo `json:"pagination"`
}
