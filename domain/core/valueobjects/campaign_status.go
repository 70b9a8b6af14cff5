package valueobjects

import (
	"fmt"
	"strings"
)

// CampaignStatus is the lifecycle state of a campaign.
//
//	ACTIVE <-> INACTIVE, either -> DELETED (soft delete)
//
// DELETED campaigns stay in storage but are hidden from default listings.
type CampaignStatus string

const (
	CampaignActive   CampaignStatus = "ACTIVE"
	CampaignInactive CampaignStatus = "INACTIVE"
	CampaignDeleted  CampaignStatus = "DELETED"
)

// DefaultCampaignStatus is assigned when a campaign is created without a status.
const DefaultCampaignStatus = CampaignActive

// CampaignStatuses lists every valid status in display order
var CampaignStatuses = []CampaignStatus{CampaignActive, CampaignInactive, CampaignDeleted}

// ParseCampaignStatus uppercases s and checks it against the known statuses.
func ParseCampaignStatus(s string) (CampaignStatus, error) {
	candidate := CampaignStatus(strings.ToUpper(strings.TrimSpace(s)))
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid status %q: must be one of %s", s, strings.Join(statusNames(), ", "))
}

// IsValid reports whether s is one of the known statuses
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignActive, CampaignInactive, CampaignDeleted:
		return true
	}
	return false
}

// IsDeleted reports whether the campaign has been soft deleted
func (s CampaignStatus) IsDeleted() bool {
	return s == CampaignDeleted
}

func (s CampaignStatus) String() string {
	return string(s)
}

func statusNames() []string {
	names := make([]string, len(CampaignStatuses))
	for i, s := range CampaignStatuses {
		names[i] = string(s)
	}
	return names
}
