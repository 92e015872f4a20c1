package cron

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Manager schedules the retention jobs that purge expired notifications
// and audit entries.
type Manager struct {
	cron *cron.Cron
	db   *gorm.DB
}

// NewManager creates a new cron manager
func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		cron: cron.New(),
		db:   db,
	}
}

// Start registers and starts all jobs.
func (m *Manager) Start() error {
	log.Println("Starting cron jobs...")

	// Hourly retention sweeps; both windows are long enough that the
	// exact run time does not matter.
	if _, err := m.cron.AddFunc("@hourly", m.PurgeExpiredNotifications); err != nil {
		return err
	}
	if _, err := m.cron.AddFunc("@hourly", m.PurgeExpiredAuditLogs); err != nil {
		return err
	}

	m.cron.Start()
	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops the scheduler, waiting for running jobs.
func (m *Manager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}
