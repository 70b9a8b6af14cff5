package queries

import (
	"strings"

	"campaign-manager/domain/core/valueobjects"
	"campaign-manager/pkg/cachekey"
	"campaign-manager/pkg/common"
	pkgerrors "campaign-manager/pkg/errors"
)

// ListCampaignsQuery lists one page of campaigns, optionally narrowed to a
// single status. Without a status DELETED campaigns are left out.
type ListCampaignsQuery struct {
	Status string
	Limit  int
	Skip   int
}

// NewListCampaignsQuery applies the default page size
func NewListCampaignsQuery(status string, limit, skip int) ListCampaignsQuery {
	if limit == 0 {
		limit = cachekey.DefaultListLimit
	}
	return ListCampaignsQuery{Status: strings.TrimSpace(status), Limit: limit, Skip: skip}
}

// Validate checks the status filter and the page window
func (q ListCampaignsQuery) Validate() error {
	if q.Status != "" {
		if _, err := valueobjects.ParseCampaignStatus(q.Status); err != nil {
			return pkgerrors.NewValidationError(err.Error()).WithDetail("field", "status")
		}
	}
	if q.Limit < 1 || q.Limit > common.MaxPageLimit {
		return pkgerrors.NewValidationError("limit must be between 1 and 1000").WithDetail("field", "limit")
	}
	if q.Skip < 0 || q.Skip > common.MaxSkip {
		return pkgerrors.NewValidationError("skip must be between 0 and 2147483647").WithDetail("field", "skip")
	}
	return nil
}

// StatusFilter returns the parsed status, zero when unfiltered
func (q ListCampaignsQuery) StatusFilter() valueobjects.CampaignStatus {
	if q.Status == "" {
		return ""
	}
	s, _ := valueobjects.ParseCampaignStatus(q.Status)
	return s
}

// CacheKey implements bus.Cacheable
func (q ListCampaignsQuery) CacheKey() string {
	return cachekey.CampaignList(q.Status, q.Limit, q.Skip)
}
