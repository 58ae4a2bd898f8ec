package store

import (
	"context"
	"time"

	"alfajr-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// GetSetting returns the stored value for key, falling back to the
// built-in default when the key is absent or the read fails. It never
// returns an error.
func (s *Store) GetSetting(ctx context.Context, key string) interface{} {
	var setting models.Setting
	err := s.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if err != nil {
		return models.DefaultSettings[key]
	}
	return setting.Value
}

// SaveSetting stores or replaces one key/value pair.
func (s *Store) SaveSetting(ctx context.Context, key string, value interface{}) error {
	setting := models.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&setting).Error
	if err != nil {
		return storageErr("SaveSetting", err)
	}
	return nil
}

// GetAllSettings returns the defaults overlaid with every stored row.
// Like GetSetting, it degrades to the defaults instead of failing.
func (s *Store) GetAllSettings(ctx context.Context) map[string]interface{} {
	settings := make(map[string]interface{}, len(models.DefaultSettings))
	for key, value := range models.DefaultSettings {
		settings[key] = value
	}

	var rows []models.Setting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		s.log.Warn("failed to load settings, using defaults", zap.Error(err))
		return settings
	}

	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings
}
