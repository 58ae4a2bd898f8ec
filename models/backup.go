package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Backup types recorded in the backup log.
const (
	BackupManual = "manual"
	BackupAuto   = "auto"
)

// BackupEntry is one row in the backup log: the sealed snapshot blob plus
// enough metadata to list and prune backups without opening them.
type BackupEntry struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date time.Time `gorm:"index" json:"date"`
	Type string    `gorm:"index" json:"type"`
	Data string    `gorm:"type:text" json:"-"`
	Size int       `json:"size"`
}

func (b *BackupEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// Snapshot is the exportable, unsealed form of a backup: every customer
// (soft-deleted included), every setting, and integrity metadata.
type Snapshot struct {
	Customers []Customer             `json:"customers"`
	Settings  map[string]interface{} `json:"settings"`
	Metadata  SnapshotMetadata       `json:"metadata"`
}

type SnapshotMetadata struct {
	Version        int       `json:"version"`
	Timestamp      time.Time `json:"timestamp"`
	Type           string    `json:"type"`
	TotalCustomers int       `json:"totalCustomers"`
	Checksum       string    `json:"checksum"`
}

// RestoreResult reports how a replayed snapshot went. A failed record is
// counted, not fatal.
type RestoreResult struct {
	Restored int `json:"restored"`
	Failed   int `json:"failed"`
	Total    int `json:"total"`
}
