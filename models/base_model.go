package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

const contextUserIDKey contextKey = "audit_user_id"

// ContextWithUserID audit kolonları için işlemi yapan kullanıcıyı context'e koyar.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, contextUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini döndürür.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(contextUserIDKey).(uint)
	return id, ok && id != 0
}

// BaseModel tüm tablolarda ortak kimlik ve audit kolonları.
// CreatedBy/UpdatedBy/DeletedBy hook'lar tarafından context'ten doldurulur.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `gorm:"index" json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if uid, ok := UserIDFromContext(tx.Statement.Context); ok {
		m.CreatedBy = &uid
		m.UpdatedBy = &uid
	}
	return nil
}

func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if uid, ok := UserIDFromContext(tx.Statement.Context); ok {
		m.UpdatedBy = &uid
	}
	return nil
}
