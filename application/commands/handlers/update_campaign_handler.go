package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/ports"
	"campaign-manager/application/queries/models"
	"campaign-manager/domain/core/entities"
	"campaign-manager/domain/core/valueobjects"
	"campaign-manager/domain/events"
	"campaign-manager/pkg/cachekey"
	pkgerrors "campaign-manager/pkg/errors"
)

// UpdateCampaignHandler handles partial campaign updates
type UpdateCampaignHandler struct {
	repo      ports.CampaignRepository
	cache     ports.Cache
	cacheTTL  time.Duration
	publisher ports.EventPublisher
	clock     ports.Clock
	logger    *zap.Logger
}

// NewUpdateCampaignHandler creates a new update campaign handler
func NewUpdateCampaignHandler(
	repo ports.CampaignRepository,
	cache ports.Cache,
	cacheTTL time.Duration,
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *zap.Logger,
) *UpdateCampaignHandler {
	return &UpdateCampaignHandler{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Handle applies the patch, re-reads the campaign and replaces its cache
// entry with the fresh copy. The default list page is dropped. An invalid
// patch fails before the store or the cache is touched.
func (h *UpdateCampaignHandler) Handle(ctx context.Context, cmd commands.UpdateCampaignCommand) (models.CampaignView, error) {
	id, err := valueobjects.NewCampaignIDFromString(cmd.ID)
	if err != nil {
		return models.CampaignView{}, pkgerrors.NewValidationError(err.Error()).WithDetail("field", "id")
	}

	patch, err := entities.NewCampaignPatch(cmd.Name, cmd.Description, cmd.Status, cmd.Leads, cmd.AccountIDs, h.clock.Now())
	if err != nil {
		return models.CampaignView{}, err
	}

	matched, err := h.repo.UpdateOne(ctx, id, patch)
	if err != nil {
		return models.CampaignView{}, err
	}
	if matched == 0 {
		return models.CampaignView{}, pkgerrors.NewNotFoundError("Campaign").WithDetail("id", id.String())
	}

	fresh, err := h.repo.FindOne(ctx, id)
	if err != nil || fresh == nil {
		// The write went through but the new state is unknown; drop what we had.
		h.cache.Delete(cachekey.Campaign(id.String()))
		h.cache.Delete(cachekey.DefaultCampaignList())
		if err == nil {
			err = pkgerrors.NewNotFoundError("Campaign").WithDetail("id", id.String())
		}
		return models.CampaignView{}, err
	}

	view := models.NewCampaignView(fresh)
	h.cache.Set(cachekey.Campaign(id.String()), view, h.cacheTTL)
	h.cache.Delete(cachekey.DefaultCampaignList())

	publishEvents(ctx, h.publisher, h.logger,
		events.NewCampaignUpdated(id, patch.ChangedFields(), fresh.Status(), patch.UpdatedAt))

	h.logger.Info("Campaign updated",
		zap.String("campaignID", id.String()),
		zap.Strings("fields", patch.ChangedFields()),
	)

	return view, nil
}
