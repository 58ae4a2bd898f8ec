package store

import (
	"context"
	"encoding/json"
	"time"

	"alfajr-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store is the only component that touches the durable representation of
// customers, settings, backups and the audit trail. All customer writes
// must go through SaveCustomer.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
	bus *EventBus
}

func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{
		db:  db,
		log: log,
		bus: NewEventBus(log),
	}
}

// Events exposes the notification bus for subscribers.
func (s *Store) Events() *EventBus { return s.bus }

// DB exposes the underlying handle for components that share the same
// database file, such as the backup log.
func (s *Store) DB() *gorm.DB { return s.db }

// InitializeSettings writes every default setting that has never been
// saved. Existing rows are left untouched.
func (s *Store) InitializeSettings(ctx context.Context) error {
	for key, value := range models.DefaultSettings {
		var existing models.Setting
		err := s.db.WithContext(ctx).First(&existing, "key = ?", key).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return storageErr("InitializeSettings", err)
		}
		if err := s.SaveSetting(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// ClearAllData physically empties the customer, backup and audit
// collections in a single transaction: either all three are emptied or
// none are. The data_cleared event fires only on success.
func (s *Store) ClearAllData(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.BackupEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.AuditLog{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.bus.Publish(Event{Type: EventError, Err: err})
		return storageErr("ClearAllData", err)
	}

	s.logAudit(ctx, "CLEAR_ALL_DATA", nil)
	s.bus.Publish(Event{Type: EventDataCleared})
	return nil
}

// AppendAudit records an action performed by a collaborating component
// (the backup engine, the scheduler) in the same trail as store writes.
func (s *Store) AppendAudit(ctx context.Context, action string, details map[string]interface{}) {
	s.logAudit(ctx, action, details)
}

// logAudit appends a row to the audit trail. The trail is write-only
// observability: failures are logged and swallowed so they never break
// the operation being audited.
func (s *Store) logAudit(ctx context.Context, action string, details map[string]interface{}) {
	payload := ""
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			payload = string(b)
		}
	}

	entry := models.AuditLog{
		Action:    action,
		Timestamp: time.Now(),
		UserID:    "system",
		Details:   payload,
		Context:   "local",
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Warn("failed to append audit entry",
			zap.String("action", action), zap.Error(err))
	}
}
