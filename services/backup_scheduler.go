// services/backup_scheduler.go
package services

import (
	"context"
	"fmt"

	"alfajr-backend/backup"
	"alfajr-backend/store"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BackupScheduler runs automatic backups on the interval configured in
// the settings store. Failures are logged, never fatal.
type BackupScheduler struct {
	engine *backup.Engine
	store  *store.Store
	log    *zap.Logger
	cron   *cron.Cron
}

func NewBackupScheduler(engine *backup.Engine, st *store.Store, log *zap.Logger) *BackupScheduler {
	return &BackupScheduler{
		engine: engine,
		store:  st,
		log:    log,
		cron:   cron.New(),
	}
}

// Start reads the autoBackup and backupInterval settings and arms the
// schedule. When autoBackup is off the scheduler stays idle.
func (s *BackupScheduler) Start(ctx context.Context) error {
	if !boolSetting(s.store.GetSetting(ctx, "autoBackup")) {
		s.log.Info("auto-backup disabled")
		return nil
	}

	hours := intSetting(s.store.GetSetting(ctx, "backupInterval"), 24)
	spec := fmt.Sprintf("@every %dh", hours)

	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.engine.Create(context.Background(), "auto"); err != nil {
			s.log.Error("auto-backup failed", zap.Error(err))
			return
		}
		s.log.Info("auto-backup completed")
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("backup scheduler started", zap.Int("intervalHours", hours))
	return nil
}

// Stop halts the schedule; a backup already running finishes.
func (s *BackupScheduler) Stop() {
	s.cron.Stop()
}

func boolSetting(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

func intSetting(v interface{}, fallback int) int {
	switch n := v.(type) {
	case int:
		if n > 0 {
			return n
		}
	case float64:
		if n > 0 {
			return int(n)
		}
	}
	return fallback
}
