package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/repair-service/internal/events"
	"github.com/spec-kit/repair-service/internal/sms"
)

// NotificationService delivers customer SMS for lifecycle events. Everything
// here is best effort: failures are logged, never propagated back to the
// operation that triggered them.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     sms.Sender
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender sms.Sender, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to lifecycle events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRepairCreated, n.handleRepairEvent)
	n.dispatcher.Subscribe(events.EventRepairCompleted, n.handleRepairEvent)
}

func (n *NotificationService) handleRepairEvent(ctx context.Context, event events.Event) error {
	if event.Message == "" || event.Customer.TelephoneNumber == "" {
		return nil
	}

	result, err := n.sender.Send(ctx, event.Message, event.Customer.TelephoneNumber)
	if err != nil {
		n.logger.Warn("customer sms failed",
			zap.String("event_type", string(event.Type)),
			zap.String("repair_id", event.RepairID),
			zap.Error(err),
		)
		return err
	}
	if result.Skipped {
		n.logger.Debug("customer sms skipped, provider disabled",
			zap.String("event_type", string(event.Type)),
			zap.String("repair_id", event.RepairID),
		)
		return nil
	}

	n.logger.Info("customer sms sent",
		zap.String("event_type", string(event.Type)),
		zap.String("repair_id", event.RepairID),
	)
	return nil
}
