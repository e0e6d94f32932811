package utils

import (
	"errors"

	"etkinlik.link/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

var ErrSessionStoreMissing = errors.New("session store bulunamadı")

// Session anahtarları.
const (
	SessionKeyUserID    = "user_id"
	SessionKeyUserRole  = "user_role"
	SessionKeyUserName  = "user_name"
	SessionKeyUserEmail = "user_email"
)

// SessionStart locals'a konan store üzerinden session başlatır.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// GetUserIDFromSession oturumdaki kullanıcı ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	id, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok || id == 0 {
		return 0, errors.New("oturumda kullanıcı yok")
	}
	return id, nil
}

// GetUserRoleFromSession oturumdaki kullanıcı rolünü döndürür.
func GetUserRoleFromSession(sess *session.Session) (models.Role, error) {
	role, ok := sess.Get(SessionKeyUserRole).(string)
	if !ok || role == "" {
		return "", errors.New("oturumda rol yok")
	}
	return models.Role(role), nil
}
