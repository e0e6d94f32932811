package services

import "etkinlik.link/models"

// AuthorizationError yetkilendirme hataları.
type AuthorizationError string

func (e AuthorizationError) Error() string { return string(e) }

const (
	ErrUnauthorized AuthorizationError = "oturum açmanız gerekiyor"
	ErrForbidden    AuthorizationError = "bu işlem için yetkiniz yok"
)

// Action servis katmanındaki yetki gerektiren işlemler.
type Action string

const (
	ActionView     Action = "view"
	ActionManage   Action = "manage"
	ActionModerate Action = "moderate"
	ActionCheckIn  Action = "check-in"
)

// Caller istek sahibinin kimliği. Oturum katmanı tarafından doldurulur ve
// servisler için opak bir girdidir.
type Caller struct {
	UserID uint
	Role   models.Role
	Email  string
}

// IsAnonymous oturum yok mu?
func (c Caller) IsAnonymous() bool { return c.UserID == 0 }

// Authorize tek merkezi yetki kuralı: super-admin her şeyi yapabilir,
// organizatör yalnızca kendi etkinliği üzerinde moderasyon/check-in/yönetim
// yapabilir. Rota bazlı dağınık rol kontrollerinin yerine geçer.
func Authorize(caller Caller, event *models.Event, action Action) error {
	if caller.IsAnonymous() {
		return ErrUnauthorized
	}
	if caller.Role == models.RoleSuperAdmin {
		return nil
	}
	switch action {
	case ActionView, ActionManage, ActionModerate, ActionCheckIn:
		if event != nil && event.OrganizerID == caller.UserID {
			return nil
		}
	}
	return ErrForbidden
}
