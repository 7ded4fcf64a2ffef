package worker

import (
	"github.com/gottaspeak/backend/internal/service"
)

// StartMailWorker registers mail notification handlers.
func StartMailWorker(notificationService *service.MailNotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
