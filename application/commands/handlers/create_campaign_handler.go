package handlers

import (
	"context"

	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/ports"
	"campaign-manager/application/queries/models"
	"campaign-manager/domain/core/entities"
	"campaign-manager/pkg/cachekey"
)

// CreateCampaignHandler handles campaign creation
type CreateCampaignHandler struct {
	repo      ports.CampaignRepository
	cache     ports.Cache
	publisher ports.EventPublisher
	clock     ports.Clock
	logger    *zap.Logger
}

// NewCreateCampaignHandler creates a new create campaign handler
func NewCreateCampaignHandler(
	repo ports.CampaignRepository,
	cache ports.Cache,
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *zap.Logger,
) *CreateCampaignHandler {
	return &CreateCampaignHandler{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Handle validates and inserts the campaign, then drops the default list page
// from the cache. Filtered and paginated list pages are left to expire.
func (h *CreateCampaignHandler) Handle(ctx context.Context, cmd commands.CreateCampaignCommand) (models.CampaignView, error) {
	campaign, err := entities.NewCampaign(cmd.Name, cmd.Description, cmd.Status, cmd.Leads, cmd.AccountIDs, h.clock.Now())
	if err != nil {
		return models.CampaignView{}, err
	}

	if _, err := h.repo.InsertOne(ctx, campaign); err != nil {
		return models.CampaignView{}, err
	}

	h.cache.Delete(cachekey.DefaultCampaignList())

	publishEvents(ctx, h.publisher, h.logger, campaign.GetUncommittedEvents()...)
	campaign.MarkEventsAsCommitted()

	h.logger.Info("Campaign created",
		zap.String("campaignID", campaign.ID().String()),
		zap.String("status", campaign.Status().String()),
	)

	return models.NewCampaignView(campaign), nil
}
