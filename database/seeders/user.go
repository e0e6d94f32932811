package seeders

import (
	"errors"
	"os"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser super-admin hesabını env'den okuyarak oluşturur veya
// günceller. Super-admin kaydının açıldığı tek yol budur.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_USER_EMAIL")
	password := os.Getenv("SYSTEM_USER_PASSWORD")
	name := os.Getenv("SYSTEM_USER_NAME")
	if name == "" {
		name = "Sistem Yöneticisi"
	}
	if email == "" || password == "" {
		return errors.New("SYSTEM_USER_EMAIL ve SYSTEM_USER_PASSWORD tanımlı olmalı")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var user models.User
	err = db.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hashed),
			Role:         models.RoleSuperAdmin,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu: %s", email)
	case err != nil:
		return err
	default:
		user.Name = name
		user.PasswordHash = string(hashed)
		user.Role = models.RoleSuperAdmin
		user.IsActive = true
		if err := db.Save(&user).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı güncellendi: %s", email)
	}
	return nil
}
