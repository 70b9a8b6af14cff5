package entities

import (
	"strings"
	"time"

	"campaign-manager/domain/core/valueobjects"
	"campaign-manager/domain/events"
	pkgerrors "campaign-manager/pkg/errors"
)

// Campaign is an outreach campaign targeting a set of leads from a set of
// sending accounts. Identity is assigned by the store on insert.
type Campaign struct {
	id          valueobjects.CampaignID
	name        string
	description string
	status      valueobjects.CampaignStatus
	leads       []string
	accountIDs  []string
	createdAt   time.Time
	updatedAt   time.Time

	events []events.DomainEvent
}

// NewCampaign validates the fields of a campaign that is about to be created.
// An empty status defaults to ACTIVE; any other value is uppercased first.
func NewCampaign(name, description, status string, leads, accountIDs []string, now time.Time) (*Campaign, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.NewValidationError("name is required").WithDetail("field", "name")
	}
	if strings.TrimSpace(description) == "" {
		return nil, pkgerrors.NewValidationError("description is required").WithDetail("field", "description")
	}

	st := valueobjects.DefaultCampaignStatus
	if status != "" {
		parsed, err := valueobjects.ParseCampaignStatus(status)
		if err != nil {
			return nil, pkgerrors.NewValidationError(err.Error()).WithDetail("field", "status")
		}
		st = parsed
	}

	return &Campaign{
		name:        name,
		description: description,
		status:      st,
		leads:       copyStrings(leads),
		accountIDs:  copyStrings(accountIDs),
		createdAt:   now,
		updatedAt:   now,
		events:      []events.DomainEvent{},
	}, nil
}

// ReconstructCampaign rebuilds a campaign from stored data without re-running
// creation rules.
func ReconstructCampaign(
	id valueobjects.CampaignID,
	name, description string,
	status valueobjects.CampaignStatus,
	leads, accountIDs []string,
	createdAt, updatedAt time.Time,
) *Campaign {
	return &Campaign{
		id:          id,
		name:        name,
		description: description,
		status:      status,
		leads:       copyStrings(leads),
		accountIDs:  copyStrings(accountIDs),
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		events:      []events.DomainEvent{},
	}
}

// AssignID records the identity handed out by the store and raises
// CampaignCreated. It may only be called once.
func (c *Campaign) AssignID(id valueobjects.CampaignID) error {
	if !c.id.IsZero() {
		return pkgerrors.NewConflictError("campaign already has an ID")
	}
	if id.IsZero() {
		return pkgerrors.NewValidationError("campaign ID cannot be empty")
	}
	c.id = id
	c.addEvent(events.NewCampaignCreated(id, c.name, c.status, c.createdAt))
	return nil
}

// ID returns the campaign's identifier
func (c *Campaign) ID() valueobjects.CampaignID { return c.id }

// Name returns the campaign name
func (c *Campaign) Name() string { return c.name }

// Description returns the campaign description
func (c *Campaign) Description() string { return c.description }

// Status returns the lifecycle status
func (c *Campaign) Status() valueobjects.CampaignStatus { return c.status }

// Leads returns a copy of the lead identifiers
func (c *Campaign) Leads() []string { return copyStrings(c.leads) }

// AccountIDs returns a copy of the sending account identifiers
func (c *Campaign) AccountIDs() []string { return copyStrings(c.accountIDs) }

// CreatedAt returns when the campaign was created
func (c *Campaign) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns when the campaign was last changed
func (c *Campaign) UpdatedAt() time.Time { return c.updatedAt }

// Apply writes a validated patch onto the campaign.
func (c *Campaign) Apply(p CampaignPatch) {
	if p.Name != nil {
		c.name = *p.Name
	}
	if p.Description != nil {
		c.description = *p.Description
	}
	if p.Status != nil {
		c.status = *p.Status
	}
	if p.Leads != nil {
		c.leads = copyStrings(*p.Leads)
	}
	if p.AccountIDs != nil {
		c.accountIDs = copyStrings(*p.AccountIDs)
	}
	c.updatedAt = p.UpdatedAt
}

// Clone returns a deep copy without pending events
func (c *Campaign) Clone() *Campaign {
	return ReconstructCampaign(c.id, c.name, c.description, c.status, c.leads, c.accountIDs, c.createdAt, c.updatedAt)
}

// GetUncommittedEvents returns all uncommitted domain events
func (c *Campaign) GetUncommittedEvents() []events.DomainEvent {
	return c.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (c *Campaign) MarkEventsAsCommitted() {
	c.events = []events.DomainEvent{}
}

func (c *Campaign) addEvent(event events.DomainEvent) {
	c.events = append(c.events, event)
}

// CampaignPatch is a partial update. Nil fields are left untouched.
type CampaignPatch struct {
	Name        *string
	Description *string
	Status      *valueobjects.CampaignStatus
	Leads       *[]string
	AccountIDs  *[]string
	UpdatedAt   time.Time
}

// NewCampaignPatch validates a partial update. Present text fields must be
// non-empty and a present status must parse.
func NewCampaignPatch(name, description, status *string, leads, accountIDs *[]string, now time.Time) (CampaignPatch, error) {
	p := CampaignPatch{UpdatedAt: now}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return CampaignPatch{}, pkgerrors.NewValidationError("name cannot be empty").WithDetail("field", "name")
		}
		p.Name = name
	}
	if description != nil {
		if strings.TrimSpace(*description) == "" {
			return CampaignPatch{}, pkgerrors.NewValidationError("description cannot be empty").WithDetail("field", "description")
		}
		p.Description = description
	}
	if status != nil {
		parsed, err := valueobjects.ParseCampaignStatus(*status)
		if err != nil {
			return CampaignPatch{}, pkgerrors.NewValidationError(err.Error()).WithDetail("field", "status")
		}
		p.Status = &parsed
	}
	if leads != nil {
		l := copyStrings(*leads)
		p.Leads = &l
	}
	if accountIDs != nil {
		a := copyStrings(*accountIDs)
		p.AccountIDs = &a
	}
	return p, nil
}

// SoftDeletePatch marks a campaign DELETED.
func SoftDeletePatch(now time.Time) CampaignPatch {
	deleted := valueobjects.CampaignDeleted
	return CampaignPatch{Status: &deleted, UpdatedAt: now}
}

// ChangedFields lists the document fields the patch writes, updatedAt included.
func (p CampaignPatch) ChangedFields() []string {
	fields := []string{}
	if p.Name != nil {
		fields = append(fields, "name")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.Leads != nil {
		fields = append(fields, "leads")
	}
	if p.AccountIDs != nil {
		fields = append(fields, "accountIDs")
	}
	return append(fields, "updatedAt")
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
