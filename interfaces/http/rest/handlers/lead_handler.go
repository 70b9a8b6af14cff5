package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/commands/bus"
	"campaign-manager/application/queries"
	querybus "campaign-manager/application/queries/bus"
	"campaign-manager/pkg/common"
	pkgerrors "campaign-manager/pkg/errors"
)

// LeadHandler serves scraped profiles
type LeadHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *LeadHandler {
	return &LeadHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errHandler,
		logger:     logger.With(zap.String("component", "leads")),
	}
}

// ListLeads handles GET /api/leads
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	page, err := common.ExtractPaginationParams(r, queries.DefaultProfileLimit)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListProfilesQuery{
		Search: r.URL.Query().Get("search"),
		Limit:  page.Limit,
		Skip:   page.Skip,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// StoreLeads handles POST /api/leads. The body is a JSON array of profiles.
func (h *LeadHandler) StoreLeads(w http.ResponseWriter, r *http.Request) {
	var profiles []commands.ProfileInput
	if err := common.ParseJSONBody(w, r, &profiles); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("Invalid data format. Expected non-empty array."))
		return
	}

	h.logger.Info("Storing profiles", zap.Int("count", len(profiles)))

	result, err := h.commandBus.Send(r.Context(), commands.StoreProfilesCommand{Profiles: profiles})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}
