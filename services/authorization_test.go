package services

import (
	"testing"

	"etkinlik.link/models"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	event := &models.Event{OrganizerID: 10}
	actions := []Action{ActionView, ActionManage, ActionModerate, ActionCheckIn}

	t.Run("anonim çağrı Unauthorized", func(t *testing.T) {
		for _, action := range actions {
			assert.ErrorIs(t, Authorize(Caller{}, event, action), ErrUnauthorized)
		}
	})

	t.Run("sahip organizatör her işlemi yapabilir", func(t *testing.T) {
		owner := Caller{UserID: 10, Role: models.RolePlanner}
		for _, action := range actions {
			assert.NoError(t, Authorize(owner, event, action))
		}
	})

	t.Run("yabancı organizatör Forbidden", func(t *testing.T) {
		stranger := Caller{UserID: 11, Role: models.RolePlanner}
		for _, action := range actions {
			assert.ErrorIs(t, Authorize(stranger, event, action), ErrForbidden)
		}
	})

	t.Run("normal kullanıcı kendi etkinliği olmayan için Forbidden", func(t *testing.T) {
		user := Caller{UserID: 12, Role: models.RoleUser}
		assert.ErrorIs(t, Authorize(user, event, ActionView), ErrForbidden)
	})

	t.Run("super-admin her etkinlikte yetkili", func(t *testing.T) {
		admin := Caller{UserID: 99, Role: models.RoleSuperAdmin}
		for _, action := range actions {
			assert.NoError(t, Authorize(admin, event, action))
		}
	})
}
