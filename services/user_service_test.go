package services

import (
	"testing"

	"etkinlik.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	service := NewUserServiceWithDB(db)

	user, err := service.Register(testContext(), "Ali Veli", "Ali@Ornek.com", "cokgizli123", models.RolePlanner)
	require.NoError(t, err)
	assert.Equal(t, "ali@ornek.com", user.Email) // e-posta normalize edilir
	assert.Equal(t, models.RolePlanner, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "cokgizli123", user.PasswordHash)

	// Aynı e-posta ile ikinci kayıt reddedilir.
	_, err = service.Register(testContext(), "Başkası", "ali@ornek.com", "cokgizli123", models.RoleUser)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Kısa şifre reddedilir.
	_, err = service.Register(testContext(), "X", "x@ornek.com", "kisa", models.RoleUser)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	// Super-admin rolü bu yoldan verilemez.
	admin, err := service.Register(testContext(), "Kurnaz", "kurnaz@ornek.com", "cokgizli123", models.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, admin.Role)

	authed, err := service.Authenticate(testContext(), "ali@ornek.com", "cokgizli123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = service.Authenticate(testContext(), "ali@ornek.com", "yanlis-sifre")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = service.Authenticate(testContext(), "yok@ornek.com", "cokgizli123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	service := NewUserServiceWithDB(db)

	user, err := service.Register(testContext(), "Pasif", "pasif@ornek.com", "cokgizli123", models.RoleUser)
	require.NoError(t, err)

	admin := Caller{UserID: 1, Role: models.RoleSuperAdmin}
	require.NoError(t, service.SetActive(testContext(), user.ID, false, admin))

	_, err = service.Authenticate(testContext(), "pasif@ornek.com", "cokgizli123")
	assert.ErrorIs(t, err, ErrAccountDisabled)

	// Yalnızca super-admin hesap durumunu değiştirebilir.
	err = service.SetActive(testContext(), user.ID, true, Caller{UserID: 2, Role: models.RolePlanner})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	service := NewUserServiceWithDB(db)

	user, err := service.Register(testContext(), "Ali", "ali@ornek.com", "eski-sifre-123", models.RoleUser)
	require.NoError(t, err)

	assert.ErrorIs(t, service.UpdatePassword(testContext(), user.ID, "yanlis", "yeni-sifre-123"), ErrInvalidCredentials)
	assert.ErrorIs(t, service.UpdatePassword(testContext(), user.ID, "eski-sifre-123", "kisa"), ErrPasswordTooShort)

	require.NoError(t, service.UpdatePassword(testContext(), user.ID, "eski-sifre-123", "yeni-sifre-123"))

	_, err = service.Authenticate(testContext(), "ali@ornek.com", "yeni-sifre-123")
	assert.NoError(t, err)
	_, err = service.Authenticate(testContext(), "ali@ornek.com", "eski-sifre-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
