// Package memory holds in-process repository implementations used for local
// development (STORE_BACKEND=memory) and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"campaign-manager/application/ports"
	"campaign-manager/domain/core/entities"
	"campaign-manager/domain/core/valueobjects"
)

type storedCampaign struct {
	campaign *entities.Campaign
	seq      int
}

// CampaignRepository is an in-memory ports.CampaignRepository. Stored
// campaigns are cloned on the way in and out so callers never share state
// with the store.
type CampaignRepository struct {
	mu        sync.RWMutex
	campaigns map[string]storedCampaign
	seq       int
}

// NewCampaignRepository creates an empty repository
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{campaigns: make(map[string]storedCampaign)}
}

// FindOne returns a copy of the campaign or nil when absent
func (r *CampaignRepository) FindOne(ctx context.Context, id valueobjects.CampaignID) (*entities.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.campaigns[id.String()]
	if !ok {
		return nil, nil
	}
	return stored.campaign.Clone(), nil
}

// FindMany returns matching campaigns newest first, windowed by page
func (r *CampaignRepository) FindMany(ctx context.Context, filter ports.CampaignFilter, page ports.Page) ([]*entities.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.matching(filter)
	sort.Slice(matched, func(i, j int) bool {
		ci, cj := matched[i].campaign.CreatedAt(), matched[j].campaign.CreatedAt()
		if ci.Equal(cj) {
			return matched[i].seq > matched[j].seq
		}
		return ci.After(cj)
	})

	result := []*entities.Campaign{}
	for i := page.Skip; i < len(matched) && (page.Limit <= 0 || len(result) < page.Limit); i++ {
		result = append(result, matched[i].campaign.Clone())
	}
	return result, nil
}

// Count returns the number of matching campaigns
func (r *CampaignRepository) Count(ctx context.Context, filter ports.CampaignFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matching(filter)), nil
}

// InsertOne stores a copy of campaign under a fresh ID
func (r *CampaignRepository) InsertOne(ctx context.Context, campaign *entities.Campaign) (valueobjects.CampaignID, error) {
	id := valueobjects.NewCampaignID()
	if err := campaign.AssignID(id); err != nil {
		return valueobjects.CampaignID{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.campaigns[id.String()] = storedCampaign{campaign: campaign.Clone(), seq: r.seq}
	return id, nil
}

// UpdateOne applies patch in place under the write lock and reports whether
// the campaign existed
func (r *CampaignRepository) UpdateOne(ctx context.Context, id valueobjects.CampaignID, patch entities.CampaignPatch) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.campaigns[id.String()]
	if !ok {
		return 0, nil
	}
	stored.campaign.Apply(patch)
	return 1, nil
}

func (r *CampaignRepository) matching(filter ports.CampaignFilter) []storedCampaign {
	matched := make([]storedCampaign, 0, len(r.campaigns))
	for _, stored := range r.campaigns {
		if filter.Matches(stored.campaign) {
			matched = append(matched, stored)
		}
	}
	return matched
}
