package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/commands/bus"
	"campaign-manager/application/queries"
	querybus "campaign-manager/application/queries/bus"
	"campaign-manager/pkg/cachekey"
	"campaign-manager/pkg/common"
	pkgerrors "campaign-manager/pkg/errors"
)

// CampaignHandler handles campaign HTTP requests
type CampaignHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *CampaignHandler {
	return &CampaignHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errHandler,
		logger:     logger.With(zap.String("component", "campaigns")),
	}
}

// CreateCampaignRequest is the request body of POST /api/campaigns
type CreateCampaignRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Leads       looseStrings `json:"leads"`
	AccountIDs  looseStrings `json:"accountIDs"`
}

// looseStrings accepts a JSON array of strings. Any other value decodes as an
// empty list instead of failing the request.
type looseStrings []string

func (l *looseStrings) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		*l = looseStrings{}
		return nil
	}
	*l = values
	return nil
}

// UpdateCampaignRequest is the request body of PUT /api/campaigns/{id}.
// Omitted fields are left unchanged.
type UpdateCampaignRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	Leads       *[]string `json:"leads"`
	AccountIDs  *[]string `json:"accountIDs"`
}

// ListCampaigns handles GET /api/campaigns
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, err := common.ExtractPaginationParams(r, cachekey.DefaultListLimit)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	query := queries.NewListCampaignsQuery(r.URL.Query().Get("status"), page.Limit, page.Skip)
	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// CreateCampaign handles POST /api/campaigns
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if err := common.ParseJSONBody(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.logger.Info("Creating new campaign", zap.String("campaignName", req.Name))

	result, err := h.commandBus.Send(r.Context(), commands.CreateCampaignCommand{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Leads:       []string(req.Leads),
		AccountIDs:  []string(req.AccountIDs),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}

// GetCampaign handles GET /api/campaigns/{id}
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	result, err := h.queryBus.Ask(r.Context(), queries.GetCampaignQuery{ID: id})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateCampaign handles PUT /api/campaigns/{id}
func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req UpdateCampaignRequest
	if err := common.ParseJSONBody(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	h.logger.Info("Updating campaign", zap.String("campaignId", id))

	result, err := h.commandBus.Send(r.Context(), commands.UpdateCampaignCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Leads:       req.Leads,
		AccountIDs:  req.AccountIDs,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteCampaign handles DELETE /api/campaigns/{id}
func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.Info("Soft deleting campaign", zap.String("campaignId", id))

	result, err := h.commandBus.Send(r.Context(), commands.DeleteCampaignCommand{ID: id})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
