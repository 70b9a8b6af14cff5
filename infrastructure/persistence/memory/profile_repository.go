package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"campaign-manager/application/ports"
	"campaign-manager/domain/core/entities"
	pkgerrors "campaign-manager/pkg/errors"
)

// ProfileRepository is an in-memory ports.ProfileRepository
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles []*entities.Profile
	urls     map[string]struct{}
}

// NewProfileRepository creates an empty repository
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{urls: make(map[string]struct{})}
}

// FindMany returns matching profiles newest first
func (r *ProfileRepository) FindMany(ctx context.Context, filter ports.ProfileFilter, page ports.Page) ([]*entities.Profile, error) {
	r.mu.RLock()
	matched := r.matching(filter)
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})

	result := []*entities.Profile{}
	for i := page.Skip; i < len(matched) && (page.Limit <= 0 || len(result) < page.Limit); i++ {
		result = append(result, matched[i])
	}
	return result, nil
}

// Count returns the number of matching profiles
func (r *ProfileRepository) Count(ctx context.Context, filter ports.ProfileFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matching(filter)), nil
}

// InsertMany stores every profile or none. Duplicate profile URLs, within the
// batch or against stored profiles, reject the batch.
func (r *ProfileRepository) InsertMany(ctx context.Context, profiles []*entities.Profile) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		url := p.ProfileURL()
		if url == "" {
			continue
		}
		_, stored := r.urls[url]
		_, dup := seen[url]
		if stored || dup {
			return nil, pkgerrors.NewValidationError("profile_url already exists").WithDetail("profile_url", url)
		}
		seen[url] = struct{}{}
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		id := uuid.New().String()
		stored := entities.ReconstructProfile(id, p.Fields(), p.CreatedAt(), p.UpdatedAt())
		p.AssignID(id)
		r.profiles = append(r.profiles, stored)
		if url := p.ProfileURL(); url != "" {
			r.urls[url] = struct{}{}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *ProfileRepository) matching(filter ports.ProfileFilter) []*entities.Profile {
	matched := make([]*entities.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		if p.Matches(filter.Search) {
			matched = append(matched, p)
		}
	}
	return matched
}
