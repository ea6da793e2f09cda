package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/poseidon-api/internal/events"
)

// AuditService writes login and entity lifecycle events to the audit log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handleLogin)
	a.dispatcher.Subscribe(events.EventLoginRejected, a.handleLogin)
	a.dispatcher.Subscribe(events.EventEntityCreated, a.handleEntity)
	a.dispatcher.Subscribe(events.EventEntityUpdated, a.handleEntity)
	a.dispatcher.Subscribe(events.EventEntityDeleted, a.handleEntity)
}

func (a *AuditService) handleLogin(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.Time("timestamp", event.Timestamp),
	}
	if p, ok := event.Payload.(events.LoginPayload); ok {
		fields = append(fields, zap.String("email", p.Email))
		if p.Reason != "" {
			fields = append(fields, zap.String("reason", p.Reason))
		}
	}
	if event.EntityID != "" {
		fields = append(fields, zap.String("identity_id", event.EntityID))
	}

	if event.Type == events.EventLoginRejected {
		a.logger.Warn(string(event.Type), fields...)
		return nil
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}

func (a *AuditService) handleEntity(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("entity", event.Entity),
		zap.String("entity_id", event.EntityID),
		zap.String("actor", event.Actor),
		zap.Time("timestamp", event.Timestamp),
	)
	return nil
}
