package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/events"
	"github.com/spec-kit/records-service/internal/observability"
)

// AuditService records every record change event in the log and the
// metrics counters.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.RecordEventTypes {
		a.dispatcher.Subscribe(eventType, a.handleRecordChanged)
	}
}

func (a *AuditService) handleRecordChanged(_ context.Context, event events.Event) error {
	a.logger.Info("record changed",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("resource", string(event.Resource)),
		zap.String("record_id", event.RecordID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload))
	a.metrics.RecordEvent(string(event.Type))
	return nil
}
