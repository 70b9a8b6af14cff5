package commands

import (
	"strings"

	"campaign-manager/domain/core/entities"
	pkgerrors "campaign-manager/pkg/errors"
)

// GenerateMessageCommand produces a personalized outreach message for a profile
type GenerateMessageCommand struct {
	Name     string `json:"name"`
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// Fields returns the profile attributes the message is built from
func (c GenerateMessageCommand) Fields() entities.ProfileFields {
	return entities.ProfileFields{
		Name:     c.Name,
		JobTitle: c.JobTitle,
		Company:  c.Company,
		Location: c.Location,
		Summary:  c.Summary,
	}
}

// Validate lists every missing field in one error
func (c GenerateMessageCommand) Validate() error {
	if missing := c.Fields().Missing(); len(missing) > 0 {
		return pkgerrors.NewValidationError("Missing fields: "+strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}
	return nil
}

// GeneratedMessageResult is the response body of a generation request
type GeneratedMessageResult struct {
	Message string `json:"message"`
}
