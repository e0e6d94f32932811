package migrations

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFormSubmissionsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating form_submissions table...")
	err := db.AutoMigrate(&models.FormSubmission{})
	if err != nil {
		configslog.Log.Error("Failed to migrate form_submissions table", zap.Error(err))
		return err
	}

	// Mükerrer başvuru yarışını veritabanı seviyesinde kapatan kısmi unique
	// index. Reddedilen başvurular tekrar başvuruyu engellemez.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_submission_event_form_email
		ON form_submissions (event_id, form_type, LOWER(email))
		WHERE status <> 'rejected' AND deleted_at IS NULL
	`).Error
	if err != nil {
		configslog.Log.Error("Failed to create submission uniqueness index", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Form_submissions table migrated successfully")
	return nil
}
