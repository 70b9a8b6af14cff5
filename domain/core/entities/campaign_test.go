package entities

import (
	"testing"
	"time"

	"campaign-manager/domain/core/valueobjects"
	"campaign-manager/domain/events"
	pkgerrors "campaign-manager/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestNewCampaign_DefaultsToActive(t *testing.T) {
	c, err := NewCampaign("Foo", "Bar", "", nil, nil, testNow)

	require.NoError(t, err)
	assert.Equal(t, valueobjects.CampaignActive, c.Status())
	assert.Equal(t, []string{}, c.Leads())
	assert.Equal(t, []string{}, c.AccountIDs())
	assert.Equal(t, testNow, c.CreatedAt())
	assert.Equal(t, testNow, c.UpdatedAt())
	assert.True(t, c.ID().IsZero())
}

func TestNewCampaign_UppercasesStatus(t *testing.T) {
	c, err := NewCampaign("Foo", "Bar", "inactive", []string{"l1"}, []string{"a1"}, testNow)

	require.NoError(t, err)
	assert.Equal(t, valueobjects.CampaignInactive, c.Status())
	assert.Equal(t, []string{"l1"}, c.Leads())
}

func TestNewCampaign_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		cname       string
		description string
		status      string
		field       string
	}{
		{name: "missing name", cname: "", description: "Bar", field: "name"},
		{name: "blank name", cname: "   ", description: "Bar", field: "name"},
		{name: "missing description", cname: "Foo", description: "", field: "description"},
		{name: "invalid status", cname: "Foo", description: "Bar", status: "ARCHIVED", field: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCampaign(tt.cname, tt.description, tt.status, nil, nil, testNow)

			assert.Nil(t, c)
			require.True(t, pkgerrors.IsValidation(err))
			assert.Equal(t, tt.field, pkgerrors.GetAppError(err).Details["field"])
		})
	}
}

func TestCampaign_AssignIDRaisesCreatedOnce(t *testing.T) {
	c, err := NewCampaign("Foo", "Bar", "", nil, nil, testNow)
	require.NoError(t, err)
	id := valueobjects.NewCampaignID()

	require.NoError(t, c.AssignID(id))
	err = c.AssignID(valueobjects.NewCampaignID())

	assert.True(t, pkgerrors.IsConflict(err))
	require.Len(t, c.GetUncommittedEvents(), 1)
	created, ok := c.GetUncommittedEvents()[0].(events.CampaignCreated)
	require.True(t, ok)
	assert.Equal(t, id.String(), created.GetAggregateID())
	assert.Equal(t, events.TypeCampaignCreated, created.GetEventType())

	c.MarkEventsAsCommitted()
	assert.Empty(t, c.GetUncommittedEvents())
}

func TestNewCampaignPatch(t *testing.T) {
	later := testNow.Add(time.Hour)

	p, err := NewCampaignPatch(strPtr("New"), nil, strPtr("inactive"), nil, nil, later)
	require.NoError(t, err)
	assert.Equal(t, valueobjects.CampaignInactive, *p.Status)
	assert.Equal(t, []string{"name", "status", "updatedAt"}, p.ChangedFields())

	_, err = NewCampaignPatch(nil, nil, strPtr("ARCHIVED"), nil, nil, later)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewCampaignPatch(nil, nil, strPtr(""), nil, nil, later)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewCampaignPatch(nil, strPtr(" "), nil, nil, nil, later)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestCampaign_ApplyAndClone(t *testing.T) {
	c := ReconstructCampaign(valueobjects.NewCampaignID(), "Foo", "Bar", valueobjects.CampaignActive,
		[]string{"l1"}, nil, testNow, testNow)
	later := testNow.Add(time.Minute)
	leads := []string{"l2", "l3"}
	p, err := NewCampaignPatch(nil, strPtr("Baz"), nil, &leads, nil, later)
	require.NoError(t, err)

	clone := c.Clone()
	c.Apply(p)

	assert.Equal(t, "Baz", c.Description())
	assert.Equal(t, []string{"l2", "l3"}, c.Leads())
	assert.Equal(t, later, c.UpdatedAt())
	assert.Equal(t, testNow, c.CreatedAt())
	assert.Equal(t, "Bar", clone.Description())
	assert.Equal(t, []string{"l1"}, clone.Leads())

	c.Apply(SoftDeletePatch(later))
	assert.True(t, c.Status().IsDeleted())
}

func TestNewProfile_MissingFields(t *testing.T) {
	p, err := NewProfile(ProfileFields{Name: "Ada", Company: "ACME"}, testNow)

	assert.Nil(t, p)
	require.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, "Missing fields: job_title, location, summary", pkgerrors.GetAppError(err).Message)
}

func TestProfile_Matches(t *testing.T) {
	p, err := NewProfile(ProfileFields{
		Name: "Ada Lovelace", JobTitle: "Engineer", Company: "Analytical Engines",
		Location: "London", Summary: "Writes programs",
	}, testNow)
	require.NoError(t, err)

	assert.True(t, p.Matches(""))
	assert.True(t, p.Matches("LONDON"))
	assert.True(t, p.Matches("engine"))
	assert.False(t, p.Matches("programs"))
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("Ada", "Ada@Example.com", "hash", RoleAdmin, testNow)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email())
	assert.True(t, u.IsAdmin())

	_, err = NewUser("Ada", "not an email", "hash", RoleUser, testNow)
	assert.True(t, pkgerrors.IsValidation(err))

	role, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)
	_, err = ParseRole("root")
	assert.True(t, pkgerrors.IsValidation(err))
}
