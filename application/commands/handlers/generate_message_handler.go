package handlers

import (
	"context"

	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/ports"
	"campaign-manager/application/services"
	"campaign-manager/domain/core/entities"
)

// GenerateMessageHandler renders personalized outreach messages
type GenerateMessageHandler struct {
	generator *services.MessageGenerator
	log       ports.MessageLog
	clock     ports.Clock
	logger    *zap.Logger
}

// NewGenerateMessageHandler creates a new generate message handler
func NewGenerateMessageHandler(
	generator *services.MessageGenerator,
	log ports.MessageLog,
	clock ports.Clock,
	logger *zap.Logger,
) *GenerateMessageHandler {
	return &GenerateMessageHandler{generator: generator, log: log, clock: clock, logger: logger}
}

// Handle renders a message for the profile. Recording it is best effort; a
// failed write never fails the request.
func (h *GenerateMessageHandler) Handle(ctx context.Context, cmd commands.GenerateMessageCommand) (commands.GeneratedMessageResult, error) {
	fields := cmd.Fields()
	text := h.generator.Generate(fields)

	if h.log != nil {
		record := &entities.GeneratedMessage{
			Profile:   fields,
			Message:   text,
			CreatedAt: h.clock.Now(),
		}
		if err := h.log.Record(ctx, record); err != nil {
			h.logger.Warn("Failed to record generated message",
				zap.String("company", fields.Company),
				zap.Error(err),
			)
		}
	}

	return commands.GeneratedMessageResult{Message: text}, nil
}
