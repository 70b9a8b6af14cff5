package valueobjects

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// CampaignID identifies a campaign. It is assigned by the store on insert
// and never changes afterwards.
type CampaignID struct {
	value string
}

// NewCampaignID creates a new random CampaignID
func NewCampaignID() CampaignID {
	return CampaignID{value: uuid.New().String()}
}

// NewCampaignIDFromString parses a CampaignID, rejecting anything that is not a UUID
func NewCampaignIDFromString(id string) (CampaignID, error) {
	if strings.TrimSpace(id) == "" {
		return CampaignID{}, errors.New("campaign ID cannot be empty")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return CampaignID{}, errors.New("campaign ID must be a valid UUID")
	}
	return CampaignID{value: parsed.String()}, nil
}

// String returns the string representation of the CampaignID
func (id CampaignID) String() string {
	return id.value
}

// Equals checks if two CampaignIDs are equal
func (id CampaignID) Equals(other CampaignID) bool {
	return id.value == other.value
}

// IsZero checks if the CampaignID is the zero value
func (id CampaignID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id CampaignID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *CampaignID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("CampaignID must be a string")
	}
	parsed, err := NewCampaignIDFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
