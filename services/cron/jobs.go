package cron

import (
	"context"
	"log"
	"time"

	"github.com/tutorslink/api/services"
)

// PurgeExpiredNotifications deletes notifications past their 30-day
// retention window.
func (m *Manager) PurgeExpiredNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	purged, err := services.NewNotificationService(m.db).PurgeExpired(ctx)
	if err != nil {
		log.Printf("[CRON] notification purge failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("[CRON] purged %d expired notifications", purged)
	}
}

// PurgeExpiredAuditLogs deletes audit entries past their 90-day
// retention window.
func (m *Manager) PurgeExpiredAuditLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	purged, err := services.NewAuditService(m.db).PurgeExpired(ctx)
	if err != nil {
		log.Printf("[CRON] audit log purge failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("[CRON] purged %d expired audit logs", purged)
	}
}
