package handlers

import (
	"context"

	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/ports"
	"campaign-manager/domain/core/entities"
	"campaign-manager/domain/core/valueobjects"
	"campaign-manager/domain/events"
	"campaign-manager/pkg/cachekey"
	pkgerrors "campaign-manager/pkg/errors"
)

// DeleteCampaignResult is returned by a successful soft delete
type DeleteCampaignResult struct {
	Message string `json:"message"`
}

// DeleteCampaignHandler handles soft deletes
type DeleteCampaignHandler struct {
	repo      ports.CampaignRepository
	cache     ports.Cache
	publisher ports.EventPublisher
	clock     ports.Clock
	logger    *zap.Logger
}

// NewDeleteCampaignHandler creates a new delete campaign handler
func NewDeleteCampaignHandler(
	repo ports.CampaignRepository,
	cache ports.Cache,
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *zap.Logger,
) *DeleteCampaignHandler {
	return &DeleteCampaignHandler{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Handle marks the campaign DELETED and removes both its own cache entry and
// the default list page. The document stays in the store.
func (h *DeleteCampaignHandler) Handle(ctx context.Context, cmd commands.DeleteCampaignCommand) (DeleteCampaignResult, error) {
	id, err := valueobjects.NewCampaignIDFromString(cmd.ID)
	if err != nil {
		return DeleteCampaignResult{}, pkgerrors.NewValidationError(err.Error()).WithDetail("field", "id")
	}

	now := h.clock.Now()
	matched, err := h.repo.UpdateOne(ctx, id, entities.SoftDeletePatch(now))
	if err != nil {
		return DeleteCampaignResult{}, err
	}
	if matched == 0 {
		return DeleteCampaignResult{}, pkgerrors.NewNotFoundError("Campaign").WithDetail("id", id.String())
	}

	h.cache.Delete(cachekey.Campaign(id.String()))
	h.cache.Delete(cachekey.DefaultCampaignList())

	publishEvents(ctx, h.publisher, h.logger, events.NewCampaignDeleted(id, now))

	h.logger.Info("Campaign deleted", zap.String("campaignID", id.String()))

	return DeleteCampaignResult{Message: "Campaign deleted successfully"}, nil
}
