package ports

import (
	"context"
	"time"

	"campaign-manager/domain/core/entities"
	"campaign-manager/domain/core/valueobjects"
	"campaign-manager/domain/events"
)

// CampaignRepository is the campaign document store.
// Every failed call is reported as a StorageUnavailable AppError.
type CampaignRepository interface {
	// FindOne returns the campaign with id, or nil without error when absent
	FindOne(ctx context.Context, id valueobjects.CampaignID) (*entities.Campaign, error)

	// FindMany returns one page of matching campaigns, newest first
	FindMany(ctx context.Context, filter CampaignFilter, page Page) ([]*entities.Campaign, error)

	// Count returns the number of matching campaigns, ignoring pagination
	Count(ctx context.Context, filter CampaignFilter) (int, error)

	// InsertOne stores a new campaign, assigns its generated ID and returns it
	InsertOne(ctx context.Context, campaign *entities.Campaign) (valueobjects.CampaignID, error)

	// UpdateOne applies patch to the campaign with id and returns how many
	// documents matched (0 or 1)
	UpdateOne(ctx context.Context, id valueobjects.CampaignID, patch entities.CampaignPatch) (int, error)
}

// CampaignFilter selects campaigns for listing. A zero Status excludes
// DELETED campaigns; any other Status matches that status only.
type CampaignFilter struct {
	Status valueobjects.CampaignStatus
}

// Matches reports whether c passes the filter
func (f CampaignFilter) Matches(c *entities.Campaign) bool {
	if f.Status == "" {
		return !c.Status().IsDeleted()
	}
	return c.Status() == f.Status
}

// Page is a skip/limit window
type Page struct {
	Limit int
	Skip  int
}

// ProfileRepository stores scraped profiles
type ProfileRepository interface {
	// FindMany returns one page of profiles matching filter, newest first
	FindMany(ctx context.Context, filter ProfileFilter, page Page) ([]*entities.Profile, error)

	// Count returns the number of profiles matching filter
	Count(ctx context.Context, filter ProfileFilter) (int, error)

	// InsertMany stores all profiles or none and returns their generated IDs.
	// A profile URL that is already stored fails the whole batch with a
	// validation error.
	InsertMany(ctx context.Context, profiles []*entities.Profile) ([]string, error)
}

// ProfileFilter narrows profile listings by a free-text search term
type ProfileFilter struct {
	Search string
}

// MessageLog keeps a record of generated outreach messages
type MessageLog interface {
	Record(ctx context.Context, msg *entities.GeneratedMessage) error
}

// UserRepository stores operator accounts
type UserRepository interface {
	// FindByEmail returns the user or nil without error when absent
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// Insert stores a new user; an existing email is a conflict
	Insert(ctx context.Context, user *entities.User) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache is the in-process response cache. Operations never fail; absence is
// a normal outcome.
type Cache interface {
	// Get returns the value if present and unexpired
	Get(key string) (interface{}, bool)

	// Set stores value for ttl, replacing any existing entry
	Set(key string, value interface{}, ttl time.Duration)

	// Delete removes a key; missing keys are ignored
	Delete(key string)

	// Clear removes all values from cache
	Clear()

	// GetOrSet returns the cached value or runs producer on a miss, caching
	// only successful results
	GetOrSet(key string, ttl time.Duration, producer func() (interface{}, error)) (interface{}, error)
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}
