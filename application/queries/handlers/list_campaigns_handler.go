package handlers

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"campaign-manager/application/ports"
	"campaign-manager/application/queries"
	"campaign-manager/application/queries/models"
	"campaign-manager/domain/core/entities"
	"campaign-manager/pkg/common"
)

// ListCampaignsHandler builds one campaign list page
type ListCampaignsHandler struct {
	repo   ports.CampaignRepository
	logger *zap.Logger
}

// NewListCampaignsHandler creates a new list campaigns handler
func NewListCampaignsHandler(repo ports.CampaignRepository, logger *zap.Logger) *ListCampaignsHandler {
	return &ListCampaignsHandler{repo: repo, logger: logger}
}

// Handle fetches the page and the total for the filter concurrently
func (h *ListCampaignsHandler) Handle(ctx context.Context, query queries.ListCampaignsQuery) (models.CampaignList, error) {
	filter := ports.CampaignFilter{Status: query.StatusFilter()}
	page := ports.Page{Limit: query.Limit, Skip: query.Skip}

	var (
		campaigns []*entities.Campaign
		total     int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		campaigns, err = h.repo.FindMany(gctx, filter, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.CampaignList{}, err
	}

	views := make([]models.CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		views = append(views, models.NewCampaignView(c))
	}

	h.logger.Debug("Listed campaigns",
		zap.String("status", query.Status),
		zap.Int("count", len(views)),
		zap.Int("total", total),
	)

	return models.CampaignList{
		Campaigns:  views,
		Pagination: common.BuildPaginationMeta(total, query.Limit, query.Skip),
	}, nil
}
