package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditLog subscribes a zap-backed audit trail to every event type.
// Lifecycle changes end up in the log stream alongside request logs.
func RegisterAuditLog(dispatcher Dispatcher, logger *zap.Logger) {
	log := func(ctx context.Context, event Event) error {
		logger.Info("audit",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("actor", event.Actor),
			zap.Time("timestamp", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
	for _, eventType := range []EventType{
		EventAgentCreated,
		EventAgentStatusChanged,
		EventApprovalResolved,
		EventBatchCompleted,
	} {
		dispatcher.Subscribe(eventType, log)
	}
}
