package valueobjects

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCampaignStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CampaignStatus
		wantErr bool
	}{
		{name: "canonical", input: "ACTIVE", want: CampaignActive},
		{name: "lowercase", input: "inactive", want: CampaignInactive},
		{name: "mixed case with spaces", input: " Deleted ", want: CampaignDeleted},
		{name: "unknown", input: "ARCHIVED", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCampaignStatus(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "ACTIVE, INACTIVE, DELETED")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCampaignStatus_IsDeleted(t *testing.T) {
	assert.True(t, CampaignDeleted.IsDeleted())
	assert.False(t, CampaignActive.IsDeleted())
	assert.False(t, CampaignStatus("").IsValid())
}

func TestNewCampaignIDFromString(t *testing.T) {
	valid := uuid.New().String()

	id, err := NewCampaignIDFromString(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, id.String())

	_, err = NewCampaignIDFromString("")
	assert.EqualError(t, err, "campaign ID cannot be empty")

	_, err = NewCampaignIDFromString("not-a-uuid")
	assert.EqualError(t, err, "campaign ID must be a valid UUID")
}

func TestCampaignID_JSONRoundTrip(t *testing.T) {
	id := NewCampaignID()

	data, err := id.MarshalJSON()
	require.NoError(t, err)

	var decoded CampaignID
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.True(t, id.Equals(decoded))

	assert.Error(t, decoded.UnmarshalJSON([]byte(`"nope"`)))
}
