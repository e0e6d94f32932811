package migrations

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateEventsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating events, event_forms & event_questions tables...")
	err := db.AutoMigrate(&models.Event{}, &models.EventForm{}, &models.EventQuestion{})
	if err != nil {
		configslog.Log.Error("Failed to migrate events tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Events tables migrated successfully")
	return nil
}
