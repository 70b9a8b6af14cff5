package handlers

import (
	"context"

	"go.uber.org/zap"

	"campaign-manager/application/ports"
	"campaign-manager/application/queries"
	"campaign-manager/application/queries/models"
	"campaign-manager/domain/core/valueobjects"
	pkgerrors "campaign-manager/pkg/errors"
)

// GetCampaignHandler loads a single campaign from the store
type GetCampaignHandler struct {
	repo   ports.CampaignRepository
	logger *zap.Logger
}

// NewGetCampaignHandler creates a new get campaign handler
func NewGetCampaignHandler(repo ports.CampaignRepository, logger *zap.Logger) *GetCampaignHandler {
	return &GetCampaignHandler{repo: repo, logger: logger}
}

// Handle returns the campaign regardless of its status; soft-deleted
// campaigns stay readable by ID.
func (h *GetCampaignHandler) Handle(ctx context.Context, query queries.GetCampaignQuery) (models.CampaignView, error) {
	id, err := valueobjects.NewCampaignIDFromString(query.ID)
	if err != nil {
		return models.CampaignView{}, pkgerrors.NewValidationError(err.Error()).WithDetail("field", "id")
	}

	campaign, err := h.repo.FindOne(ctx, id)
	if err != nil {
		return models.CampaignView{}, err
	}
	if campaign == nil {
		return models.CampaignView{}, pkgerrors.NewNotFoundError("Campaign").WithDetail("id", id.String())
	}

	return models.NewCampaignView(campaign), nil
}
