package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is an append-only trail, one row per mutating operation. The
// core never reads it back; it exists for external inspection tooling.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Action    string    `gorm:"index;type:varchar(40)" json:"action"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	UserID    string    `gorm:"index" json:"userId"`
	Details   string    `gorm:"type:text" json:"details"`
	Context   string    `json:"context"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
