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

// ListProfilesHandler lists scraped leads
type ListProfilesHandler struct {
	repo   ports.ProfileRepository
	logger *zap.Logger
}

// NewListProfilesHandler creates a new list profiles handler
func NewListProfilesHandler(repo ports.ProfileRepository, logger *zap.Logger) *ListProfilesHandler {
	return &ListProfilesHandler{repo: repo, logger: logger}
}

// Handle returns one page of leads matching the search term
func (h *ListProfilesHandler) Handle(ctx context.Context, query queries.ListProfilesQuery) (models.ProfileList, error) {
	filter := ports.ProfileFilter{Search: query.Term()}
	page := ports.Page{Limit: query.Limit, Skip: query.Skip}

	var (
		profiles []*entities.Profile
		total    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = h.repo.FindMany(gctx, filter, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.ProfileList{}, err
	}

	views := make([]models.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, models.NewProfileView(p))
	}

	return models.ProfileList{
		Profiles:   views,
		Pagination: common.BuildPaginationMeta(total, query.Limit, query.Skip),
	}, nil
}
