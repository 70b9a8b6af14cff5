package queries

import (
	"strings"

	"campaign-manager/domain/core/valueobjects"
	"campaign-manager/pkg/cachekey"
	pkgerrors "campaign-manager/pkg/errors"
)

// GetCampaignQuery fetches a single campaign by ID
type GetCampaignQuery struct {
	ID string
}

// Validate only rejects a blank ID. A malformed ID is reported by the
// handler, after the cache has been consulted.
func (q GetCampaignQuery) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return pkgerrors.NewValidationError("campaign ID is required").WithDetail("field", "id")
	}
	return nil
}

// CacheKey implements bus.Cacheable. Any accepted spelling of a UUID maps to
// the canonical key that writes invalidate; an unparseable ID keeps its raw
// form so the handler can reject it.
func (q GetCampaignQuery) CacheKey() string {
	if id, err := valueobjects.NewCampaignIDFromString(q.ID); err == nil {
		return cachekey.Campaign(id.String())
	}
	return cachekey.Campaign(q.ID)
}
