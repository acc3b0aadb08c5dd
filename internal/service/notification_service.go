package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/accreditation-service/internal/config"
	"github.com/spec-kit/accreditation-service/internal/events"
)

// NotificationService emits operational notifications for domain events.
// The approval email itself is not event-driven: the approve workflow calls
// the mailer inline so the update-then-send ordering stays observable.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccreditationSubmitted, n.handleSubmitted)
	n.dispatcher.Subscribe(events.EventAccreditationStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventAccreditationZoneAssigned, n.handleZoneAssigned)
}

func (n *NotificationService) handleSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("AccreditationSubmitted", zap.Int64("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("AccreditationStatusChanged", zap.Int64("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleZoneAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("AccreditationZoneAssigned", zap.Int64("record_id", event.RecordID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("record_id", event.RecordID),
		zap.String("event_type", string(event.Type)))
}
