package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/commands/bus"
	"campaign-manager/pkg/common"
	pkgerrors "campaign-manager/pkg/errors"
)

// MessageHandler generates personalized outreach messages
type MessageHandler struct {
	commandBus *bus.CommandBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(commandBus *bus.CommandBus, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		commandBus: commandBus,
		errors:     errHandler,
		logger:     logger.With(zap.String("component", "messages")),
	}
}

// GenerateMessage handles POST /api/personalized-message
func (h *MessageHandler) GenerateMessage(w http.ResponseWriter, r *http.Request) {
	var cmd commands.GenerateMessageCommand
	if err := common.ParseJSONBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.logger.Debug("Generating personalized message", zap.String("company", cmd.Company))

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
