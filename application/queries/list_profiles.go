package queries

import (
	"strings"

	"campaign-manager/pkg/common"
	pkgerrors "campaign-manager/pkg/errors"
)

// DefaultProfileLimit is the lead page size when none is given
const DefaultProfileLimit = 50

// ListProfilesQuery lists scraped leads. Results are never cached.
type ListProfilesQuery struct {
	Search string
	Limit  int
	Skip   int
}

// Validate checks the page window
func (q ListProfilesQuery) Validate() error {
	if q.Limit < 1 || q.Limit > common.MaxPageLimit {
		return pkgerrors.NewValidationError("limit must be between 1 and 1000").WithDetail("field", "limit")
	}
	if q.Skip < 0 || q.Skip > common.MaxSkip {
		return pkgerrors.NewValidationError("skip must be between 0 and 2147483647").WithDetail("field", "skip")
	}
	return nil
}

// Term returns the normalized search term
func (q ListProfilesQuery) Term() string {
	return strings.TrimSpace(q.Search)
}
