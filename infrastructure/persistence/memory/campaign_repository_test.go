package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"campaign-manager/application/ports"
	"campaign-manager/domain/core/entities"
	"campaign-manager/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func insertCampaign(t *testing.T, repo *CampaignRepository, name, status string, at time.Time) valueobjects.CampaignID {
	t.Helper()
	c, err := entities.NewCampaign(name, "desc", status, nil, nil, at)
	require.NoError(t, err)
	id, err := repo.InsertOne(context.Background(), c)
	require.NoError(t, err)
	return id
}

func names(cs []*entities.Campaign) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name()
	}
	return out
}

func TestCampaignRepository_FindManyOrdersAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewCampaignRepository()
	insertCampaign(t, repo, "oldest", "", base)
	insertCampaign(t, repo, "paused", "INACTIVE", base.Add(time.Minute))
	gone := insertCampaign(t, repo, "gone", "", base.Add(2*time.Minute))
	insertCampaign(t, repo, "newest", "", base.Add(3*time.Minute))

	n, err := repo.UpdateOne(ctx, gone, entities.SoftDeletePatch(base.Add(4*time.Minute)))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	all, err := repo.FindMany(ctx, ports.CampaignFilter{}, ports.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "paused", "oldest"}, names(all))

	deleted, err := repo.FindMany(ctx, ports.CampaignFilter{Status: valueobjects.CampaignDeleted}, ports.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"gone"}, names(deleted))

	count, err := repo.Count(ctx, ports.CampaignFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	window, err := repo.FindMany(ctx, ports.CampaignFilter{}, ports.Page{Limit: 1, Skip: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"paused"}, names(window))
}

func TestCampaignRepository_UpdateOneMissing(t *testing.T) {
	repo := NewCampaignRepository()

	n, err := repo.UpdateOne(context.Background(), valueobjects.NewCampaignID(), entities.SoftDeletePatch(base))

	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCampaignRepository_FindOneReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewCampaignRepository()
	id := insertCampaign(t, repo, "original", "", base)

	found, err := repo.FindOne(ctx, id)
	require.NoError(t, err)
	found.Apply(entities.SoftDeletePatch(base))

	again, err := repo.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, valueobjects.CampaignActive, again.Status())

	missing, err := repo.FindOne(ctx, valueobjects.NewCampaignID())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCampaignRepository_ConcurrentReadsAndUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewCampaignRepository()
	id := insertCampaign(t, repo, "shared", "", base)
	insertCampaign(t, repo, "other", "", base.Add(time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := repo.FindMany(ctx, ports.CampaignFilter{}, ports.Page{Limit: 10})
			assert.NoError(t, err)
		}()
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("renamed-%d", i)
			patch, err := entities.NewCampaignPatch(&name, nil, nil, nil, nil, base.Add(time.Duration(i)*time.Second))
			if !assert.NoError(t, err) {
				return
			}
			_, err = repo.UpdateOne(ctx, id, patch)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	found, err := repo.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, found.Name(), "renamed-")
}

func TestProfileRepository_InsertManyRejectsDuplicateURL(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository()
	fields := entities.ProfileFields{
		Name: "Ada", JobTitle: "Engineer", Company: "ACME", Location: "London",
		Summary: "Builds things", ProfileURL: "https://example.com/in/ada",
	}
	p1, err := entities.NewProfile(fields, base)
	require.NoError(t, err)
	p2, err := entities.NewProfile(fields, base)
	require.NoError(t, err)

	ids, err := repo.InsertMany(ctx, []*entities.Profile{p1})
	require.NoError(t, err)
	assert.Len(t, ids, 1)
	assert.Equal(t, ids[0], p1.ID())

	_, err = repo.InsertMany(ctx, []*entities.Profile{p2})
	assert.Error(t, err)

	count, err := repo.Count(ctx, ports.ProfileFilter{Search: "acme"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
