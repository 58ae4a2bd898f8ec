package models

import "time"

// Setting is one key/value preference row. Values are stored as JSON so
// booleans, numbers and strings all round-trip without a schema change.
type Setting struct {
	Key       string      `gorm:"primaryKey" json:"key"`
	Value     interface{} `gorm:"serializer:json" json:"value"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// DefaultSettings are returned for any key that has never been saved.
// Unknown keys are stored and returned verbatim but have no built-in
// effect.
var DefaultSettings = map[string]interface{}{
	"theme":          "dark",
	"autoSave":       true,
	"autoBackup":     true,
	"backupInterval": 24,
	"currency":       "افغانی",
	"language":       "fa",
	"printFormat":    "thermal",
	"notifications":  true,
	"offlineMode":    true,
}
