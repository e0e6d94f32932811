package migrations

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateReviewsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating reviews table...")
	err := db.AutoMigrate(&models.Review{})
	if err != nil {
		configslog.Log.Error("Failed to migrate reviews table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Reviews table migrated successfully")
	return nil
}
