package config

import (
	"fmt"

	"alfajr-backend/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDB opens the embedded database file and brings the schema up to
// date. AutoMigrate is idempotent: running it against a current schema is
// a no-op.
func ConnectDB(path string) error {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	if Log != nil {
		Log.Info("database connected", zap.String("path", path), zap.Int("schemaVersion", SchemaVersion))
	}
	return nil
}

// Migrate creates or upgrades the four collections.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Setting{},
		&models.BackupEntry{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
