package migrations

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateSentEmailsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating sent_emails table...")
	err := db.AutoMigrate(&models.SentEmail{})
	if err != nil {
		configslog.Log.Error("Failed to migrate sent_emails table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Sent_emails table migrated successfully")
	return nil
}
