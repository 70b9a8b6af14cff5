package commands

import (
	"campaign-manager/domain/core/valueobjects"
	pkgerrors "campaign-manager/pkg/errors"
	"campaign-manager/pkg/utils"
)

// CreateCampaignCommand creates a campaign. An empty Status means ACTIVE.
type CreateCampaignCommand struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Status      string   `json:"status"`
	Leads       []string `json:"leads"`
	AccountIDs  []string `json:"accountIDs"`
}

// Validate checks required fields; status and blank values are checked by the entity
func (c CreateCampaignCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateCampaignCommand applies a partial update. Nil fields are untouched.
type UpdateCampaignCommand struct {
	ID          string
	Name        *string
	Description *string
	Status      *string
	Leads       *[]string
	AccountIDs  *[]string
}

// Validate checks the campaign ID
func (c UpdateCampaignCommand) Validate() error {
	return validateCampaignID(c.ID)
}

// DeleteCampaignCommand soft deletes a campaign
type DeleteCampaignCommand struct {
	ID string
}

// Validate checks the campaign ID
func (c DeleteCampaignCommand) Validate() error {
	return validateCampaignID(c.ID)
}

func validateCampaignID(id string) error {
	if _, err := valueobjects.NewCampaignIDFromString(id); err != nil {
		return pkgerrors.NewValidationError(err.Error()).WithDetail("field", "id")
	}
	return nil
}
