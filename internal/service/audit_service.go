package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/events"
)

// AuditService writes an audit trail of answered queries and directory
// reloads to the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (s *AuditService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventQueryAnswered, s.handleQueryAnswered)
	s.dispatcher.Subscribe(events.EventDirectoryReloaded, s.handleDirectoryReloaded)
}

func (s *AuditService) handleQueryAnswered(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.QueryAnsweredPayload)
	if !ok {
		s.logger.Warn("QueryAnswered with unexpected payload", zap.String("event_id", event.ID))
		return nil
	}
	intents := make([]string, 0, len(payload.Intents))
	for _, intent := range payload.Intents {
		intents = append(intents, string(intent))
	}
	s.logger.Info("QueryAnswered",
		zap.String("event_id", event.ID),
		zap.String("primary_intent", string(payload.PrimaryIntent)),
		zap.Strings("intents", intents),
		zap.Int("names", payload.NameCount),
		zap.Bool("failed", payload.Failed),
		zap.Duration("duration", payload.Duration))
	return nil
}

func (s *AuditService) handleDirectoryReloaded(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DirectoryReloadedPayload)
	if !ok {
		s.logger.Warn("DirectoryReloaded with unexpected payload", zap.String("event_id", event.ID))
		return nil
	}
	if payload.Error != "" {
		s.logger.Warn("DirectoryReloaded",
			zap.String("event_id", event.ID),
			zap.String("error", payload.Error))
		return nil
	}
	s.logger.Info("DirectoryReloaded",
		zap.String("event_id", event.ID),
		zap.Int("employees", payload.Employees))
	return nil
}
