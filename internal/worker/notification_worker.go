package worker

import (
	"github.com/practice-kit/practice-service/internal/events"
	"github.com/practice-kit/practice-service/internal/service"
)

// StartNotificationWorker wires the notification handlers onto the
// dispatcher so record mutations reach the change feed.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher) {
	if notificationService == nil || dispatcher == nil {
		return
	}
	notificationService.RegisterHandlers(dispatcher)
}
