// util/notification_service.go

package util

import (
	"context"

	"go.uber.org/zap"

	"github.com/talentedge/console-api/audit"
	logger "github.com/talentedge/console-api/logging"
)

// NotificationService delivers security alerts raised by the audit trail.
// Delivery is currently log-based; the on-call channel integration hangs off
// the same entry point.
type NotificationService struct {
	bus *EventBus
}

func NewNotificationService(bus *EventBus) *NotificationService {
	return &NotificationService{bus: bus}
}

// Alert satisfies audit.Notifier: critical security events land here.
func (n *NotificationService) Alert(ctx context.Context, event audit.SecurityEvent) {
	logger.Error("SECURITY ALERT",
		zap.String("eventType", event.EventType),
		zap.String("severity", event.Severity),
		zap.String("userID", event.UserID),
		zap.String("description", event.Description))

	if n.bus != nil {
		n.bus.Publish(ctx, EventSecurityAlert, event)
	}
}
