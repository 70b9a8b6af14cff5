package events

import (
	"time"

	"campaign-manager/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

const (
	TypeCampaignCreated = "campaign.created"
	TypeCampaignUpdated = "campaign.updated"
	TypeCampaignDeleted = "campaign.deleted"
)

// Campaign Events

// CampaignCreated is raised after a campaign has been inserted
type CampaignCreated struct {
	BaseEvent
	CampaignID valueobjects.CampaignID     `json:"campaign_id"`
	Name       string                      `json:"name"`
	Status     valueobjects.CampaignStatus `json:"status"`
}

// NewCampaignCreated creates a CampaignCreated event
func NewCampaignCreated(id valueobjects.CampaignID, name string, status valueobjects.CampaignStatus, timestamp time.Time) CampaignCreated {
	return CampaignCreated{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   TypeCampaignCreated,
			Timestamp:   timestamp,
			Version:     1,
		},
		CampaignID: id,
		Name:       name,
		Status:     status,
	}
}

// CampaignUpdated is raised after a partial update has been applied
type CampaignUpdated struct {
	BaseEvent
	CampaignID    valueobjects.CampaignID     `json:"campaign_id"`
	ChangedFields []string                    `json:"changed_fields"`
	Status        valueobjects.CampaignStatus `json:"status"`
}

// NewCampaignUpdated creates a CampaignUpdated event
func NewCampaignUpdated(id valueobjects.CampaignID, changed []string, status valueobjects.CampaignStatus, timestamp time.Time) CampaignUpdated {
	return CampaignUpdated{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   TypeCampaignUpdated,
			Timestamp:   timestamp,
			Version:     1,
		},
		CampaignID:    id,
		ChangedFields: changed,
		Status:        status,
	}
}

// CampaignDeleted is raised after a campaign has been soft deleted
type CampaignDeleted struct {
	BaseEvent
	CampaignID valueobjects.CampaignID `json:"campaign_id"`
}

// NewCampaignDeleted creates a CampaignDeleted event
func NewCampaignDeleted(id valueobjects.CampaignID, timestamp time.Time) CampaignDeleted {
	return CampaignDeleted{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   TypeCampaignDeleted,
			Timestamp:   timestamp,
			Version:     1,
		},
		CampaignID: id,
	}
}
