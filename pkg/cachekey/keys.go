// Package cachekey builds the cache keys shared by the read path and the
// write-side invalidation.
package cachekey

import (
	"fmt"
	"strings"
)

const (
	// DefaultListLimit is the page size used when a list request gives none.
	DefaultListLimit = 100
	// AllStatuses stands in for "no status filter" in list keys.
	AllStatuses = "all"
)

// Campaign returns the key of a single campaign: campaign:<id>
func Campaign(id string) string {
	return "campaign:" + id
}

// CampaignList returns the key of one list page:
// campaigns:<status|all>:<limit>:<skip>. Every (status, limit, skip) tuple
// gets its own entry.
func CampaignList(status string, limit, skip int) string {
	s := strings.ToUpper(status)
	if s == "" {
		s = AllStatuses
	}
	return fmt.Sprintf("campaigns:%s:%d:%d", s, limit, skip)
}

// DefaultCampaignList is the unfiltered first page. It is the only list key
// that campaign writes invalidate; other list pages go stale until they expire.
func DefaultCampaignList() string {
	return CampaignList("", DefaultListLimit, 0)
}
