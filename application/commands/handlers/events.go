package handlers

import (
	"context"

	"go.uber.org/zap"

	"campaign-manager/application/ports"
	"campaign-manager/domain/events"
)

// publishEvents hands events to the publisher after the store write and cache
// invalidation have completed. Failures are logged; the write already happened.
func publishEvents(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, evts ...events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.PublishBatch(ctx, evts); err != nil {
		logger.Warn("Failed to publish events",
			zap.Int("count", len(evts)),
			zap.String("eventType", evts[0].GetEventType()),
			zap.Error(err),
		)
	}
}
