package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campaign-manager/application/ports"
	"campaign-manager/application/queries"
	"campaign-manager/domain/core/entities"
	"campaign-manager/domain/core/valueobjects"
	"campaign-manager/infrastructure/persistence/memory"
	pkgerrors "campaign-manager/pkg/errors"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *memory.CampaignRepository, name, status string, at time.Time) valueobjects.CampaignID {
	t.Helper()
	c, err := entities.NewCampaign(name, "d", status, nil, nil, at)
	require.NoError(t, err)
	id, err := repo.InsertOne(context.Background(), c)
	require.NoError(t, err)
	return id
}

func names(t *testing.T, repo *memory.CampaignRepository, q queries.ListCampaignsQuery) ([]string, int, bool) {
	t.Helper()
	list, err := NewListCampaignsHandler(repo, zap.NewNop()).Handle(context.Background(), q)
	require.NoError(t, err)
	out := make([]string, 0, len(list.Campaigns))
	for _, c := range list.Campaigns {
		out = append(out, c.Name)
	}
	return out, list.Pagination.Total, list.Pagination.HasMore
}

func TestListCampaignsHandler(t *testing.T) {
	// Arrange
	repo := memory.NewCampaignRepository()
	seed(t, repo, "oldest", "ACTIVE", t0)
	seed(t, repo, "paused", "INACTIVE", t0.Add(time.Minute))
	deletedID := seed(t, repo, "gone", "ACTIVE", t0.Add(2*time.Minute))
	seed(t, repo, "newest", "", t0.Add(3*time.Minute))
	_, err := repo.UpdateOne(context.Background(), deletedID, entities.SoftDeletePatch(t0.Add(time.Hour)))
	require.NoError(t, err)

	tests := []struct {
		name      string
		query     queries.ListCampaignsQuery
		wantNames []string
		wantTotal int
		wantMore  bool
	}{
		{
			name:      "default excludes deleted, newest first",
			query:     queries.NewListCampaignsQuery("", 0, 0),
			wantNames: []string{"newest", "paused", "oldest"},
			wantTotal: 3,
		},
		{
			name:      "status filter",
			query:     queries.NewListCampaignsQuery("active", 0, 0),
			wantNames: []string{"newest", "oldest"},
			wantTotal: 2,
		},
		{
			name:      "deleted are listed only when asked for",
			query:     queries.NewListCampaignsQuery("DELETED", 0, 0),
			wantNames: []string{"gone"},
			wantTotal: 1,
		},
		{
			name:      "pagination window",
			query:     queries.NewListCampaignsQuery("", 1, 1),
			wantNames: []string{"paused"},
			wantTotal: 3,
			wantMore:  true,
		},
		{
			name:      "skip past the end",
			query:     queries.NewListCampaignsQuery("", 10, 10),
			wantNames: []string{},
			wantTotal: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got, total, more := names(t, repo, tt.query)

			// Assert
			assert.Equal(t, tt.wantNames, got)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantMore, more)
		})
	}
}

type failingCampaignRepository struct {
	ports.CampaignRepository
	err error
}

func (r failingCampaignRepository) FindMany(ctx context.Context, filter ports.CampaignFilter, page ports.Page) ([]*entities.Campaign, error) {
	return nil, r.err
}

func (r failingCampaignRepository) Count(ctx context.Context, filter ports.CampaignFilter) (int, error) {
	return 0, r.err
}

func (r failingCampaignRepository) FindOne(ctx context.Context, id valueobjects.CampaignID) (*entities.Campaign, error) {
	return nil, r.err
}

func TestListCampaignsHandler_StorageFailure(t *testing.T) {
	repo := failingCampaignRepository{err: pkgerrors.NewStorageUnavailableError("Scan", errors.New("no route"))}

	_, err := NewListCampaignsHandler(repo, zap.NewNop()).Handle(context.Background(), queries.NewListCampaignsQuery("", 0, 0))

	require.Error(t, err)
	assert.True(t, pkgerrors.IsStorageUnavailable(err))
}

func TestGetCampaignHandler(t *testing.T) {
	repo := memory.NewCampaignRepository()
	id := seed(t, repo, "one", "", t0)
	handler := NewGetCampaignHandler(repo, zap.NewNop())

	t.Run("found", func(t *testing.T) {
		view, err := handler.Handle(context.Background(), queries.GetCampaignQuery{ID: id.String()})
		require.NoError(t, err)
		assert.Equal(t, "one", view.Name)
	})

	t.Run("soft-deleted is still readable", func(t *testing.T) {
		_, err := repo.UpdateOne(context.Background(), id, entities.SoftDeletePatch(t0.Add(time.Minute)))
		require.NoError(t, err)

		view, err := handler.Handle(context.Background(), queries.GetCampaignQuery{ID: id.String()})
		require.NoError(t, err)
		assert.Equal(t, "DELETED", view.Status)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), queries.GetCampaignQuery{ID: valueobjects.NewCampaignID().String()})
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), queries.GetCampaignQuery{ID: "abc"})
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		failing := NewGetCampaignHandler(failingCampaignRepository{err: pkgerrors.NewStorageUnavailableError("GetItem", errors.New("x"))}, zap.NewNop())
		_, err := failing.Handle(context.Background(), queries.GetCampaignQuery{ID: id.String()})
		assert.True(t, pkgerrors.IsStorageUnavailable(err))
	})
}

func TestListProfilesHandler(t *testing.T) {
	repo := memory.NewProfileRepository()
	var batch []*entities.Profile
	for i, company := range []string{"Acme", "Globex", "Acme Labs"} {
		p, err := entities.NewProfile(entities.ProfileFields{
			Name: "P", JobTitle: "Engineer", Company: company, Location: "Remote", Summary: "s",
		}, t0.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		batch = append(batch, p)
	}
	_, err := repo.InsertMany(context.Background(), batch)
	require.NoError(t, err)

	handler := NewListProfilesHandler(repo, zap.NewNop())

	list, err := handler.Handle(context.Background(), queries.ListProfilesQuery{Search: "acme", Limit: 50})
	require.NoError(t, err)
	require.Len(t, list.Profiles, 2)
	assert.Equal(t, "Acme Labs", list.Profiles[0].Company)
	assert.Equal(t, 2, list.Pagination.Total)
	assert.False(t, list.Pagination.HasMore)
}
