package migrations

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateTicketsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating tickets table...")
	err := db.AutoMigrate(&models.Ticket{})
	if err != nil {
		configslog.Log.Error("Failed to migrate tickets table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Tickets table migrated successfully")
	return nil
}
