package queries

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "campaign-manager/pkg/errors"
)

func TestListCampaignsQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   ListCampaignsQuery
		wantErr bool
	}{
		{"defaults", NewListCampaignsQuery("", 0, 0), false},
		{"lowercase status", NewListCampaignsQuery("inactive", 10, 5), false},
		{"unknown status", NewListCampaignsQuery("ARCHIVED", 0, 0), true},
		{"limit too large", NewListCampaignsQuery("", 1001, 0), true},
		{"negative limit", NewListCampaignsQuery("", -1, 0), true},
		{"negative skip", NewListCampaignsQuery("", 10, -1), true},
		{"skip too large", NewListCampaignsQuery("", 10, math.MaxInt), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.True(t, pkgerrors.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListCampaignsQuery_CacheKey(t *testing.T) {
	assert.Equal(t, "campaigns:all:100:0", NewListCampaignsQuery("", 0, 0).CacheKey())
	assert.Equal(t, "campaigns:ACTIVE:20:40", NewListCampaignsQuery(" active ", 20, 40).CacheKey())
}

func TestGetCampaignQuery(t *testing.T) {
	assert.True(t, pkgerrors.IsValidation(GetCampaignQuery{ID: "  "}.Validate()))
	assert.NoError(t, GetCampaignQuery{ID: "not-yet-parsed"}.Validate())
	assert.Equal(t, "campaign:abc", GetCampaignQuery{ID: "abc"}.CacheKey())
}

func TestGetCampaignQuery_CacheKeyIsCanonical(t *testing.T) {
	const canonical = "campaign:3f2b8c1e-6a4d-4e7b-9c0a-1d2e3f4a5b6c"

	for _, id := range []string{
		"3f2b8c1e-6a4d-4e7b-9c0a-1d2e3f4a5b6c",
		"3F2B8C1E-6A4D-4E7B-9C0A-1D2E3F4A5B6C",
		"{3f2b8c1e-6a4d-4e7b-9c0a-1d2e3f4a5b6c}",
		"urn:uuid:3f2b8c1e-6a4d-4e7b-9c0a-1d2e3f4a5b6c",
	} {
		assert.Equal(t, canonical, GetCampaignQuery{ID: id}.CacheKey(), id)
	}
}

func TestListProfilesQuery_Validate(t *testing.T) {
	assert.NoError(t, ListProfilesQuery{Limit: DefaultProfileLimit}.Validate())
	assert.True(t, pkgerrors.IsValidation(ListProfilesQuery{Limit: 0}.Validate()))
	assert.True(t, pkgerrors.IsValidation(ListProfilesQuery{Limit: 10, Skip: -2}.Validate()))
}
