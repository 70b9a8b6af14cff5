package commands

import (
	pkgerrors "campaign-manager/pkg/errors"
)

// ProfileInput is one scraped profile as submitted by the scraper or an import file
type ProfileInput struct {
	Name       string `json:"name"`
	JobTitle   string `json:"job_title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Summary    string `json:"summary"`
	ProfileURL string `json:"profile_url,omitempty"`
}

// StoreProfilesCommand stores a batch of profiles
type StoreProfilesCommand struct {
	Profiles []ProfileInput
}

// Validate rejects an empty batch
func (c StoreProfilesCommand) Validate() error {
	if len(c.Profiles) == 0 {
		return pkgerrors.NewValidationError("Invalid data format. Expected non-empty array.")
	}
	return nil
}

// StoreProfilesResult reports the IDs of stored profiles
type StoreProfilesResult struct {
	Message     string   `json:"message"`
	InsertedIDs []string `json:"insertedIds"`
}
