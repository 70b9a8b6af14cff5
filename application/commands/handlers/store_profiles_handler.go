package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/ports"
	"campaign-manager/domain/core/entities"
	pkgerrors "campaign-manager/pkg/errors"
)

// StoreProfilesHandler stores scraped profile batches
type StoreProfilesHandler struct {
	repo   ports.ProfileRepository
	clock  ports.Clock
	logger *zap.Logger
}

// NewStoreProfilesHandler creates a new store profiles handler
func NewStoreProfilesHandler(repo ports.ProfileRepository, clock ports.Clock, logger *zap.Logger) *StoreProfilesHandler {
	return &StoreProfilesHandler{repo: repo, clock: clock, logger: logger}
}

// Handle validates every profile before writing any of them. The batch is
// stored as a whole or not at all.
func (h *StoreProfilesHandler) Handle(ctx context.Context, cmd commands.StoreProfilesCommand) (commands.StoreProfilesResult, error) {
	now := h.clock.Now()
	profiles := make([]*entities.Profile, 0, len(cmd.Profiles))
	for i, in := range cmd.Profiles {
		p, err := entities.NewProfile(entities.ProfileFields{
			Name:       in.Name,
			JobTitle:   in.JobTitle,
			Company:    in.Company,
			Location:   in.Location,
			Summary:    in.Summary,
			ProfileURL: in.ProfileURL,
		}, now)
		if err != nil {
			if appErr := pkgerrors.GetAppError(err); appErr != nil {
				appErr.WithDetail("index", i)
			}
			return commands.StoreProfilesResult{}, err
		}
		profiles = append(profiles, p)
	}

	ids, err := h.repo.InsertMany(ctx, profiles)
	if err != nil {
		return commands.StoreProfilesResult{}, err
	}

	h.logger.Info("Profiles stored", zap.Int("count", len(ids)))

	return commands.StoreProfilesResult{
		Message:     fmt.Sprintf("%d profiles stored successfully", len(ids)),
		InsertedIDs: ids,
	}, nil
}
