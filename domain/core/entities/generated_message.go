package entities

import "time"

// GeneratedMessage records an outreach message produced for a profile.
type GeneratedMessage struct {
	ID        string
	Profile   ProfileFields
	Message   string
	CreatedAt time.Time
}
