package services

import (
	"context"
	"errors"
	"strings"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserServiceError kullanıcı servis hataları.
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound           UserServiceError = "kullanıcı bulunamadı"
	ErrEmailTaken             UserServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrInvalidCredentials     UserServiceError = "e-posta veya şifre hatalı"
	ErrAccountDisabled        UserServiceError = "hesabınız pasif durumda"
	ErrPasswordTooShort       UserServiceError = "şifre en az 8 karakter olmalıdır"
	ErrPasswordHashingFailed  UserServiceError = "şifre oluşturulamadı"
	ErrUserRegistrationFailed UserServiceError = "kayıt tamamlanamadı"
)

// IUserService kullanıcı işlemleri için arayüz.
type IUserService interface {
	Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	GetAllUsersPaginated(ctx context.Context, caller Caller, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	SetActive(ctx context.Context, userID uint, active bool, caller Caller) error
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo repositories.IUserRepository
}

// NewUserService üretim kurulumunda global bağlantıyı kullanır.
func NewUserService() IUserService {
	return NewUserServiceWithDB(configsdatabase.GetDB())
}

// NewUserServiceWithDB bağlantıyı dışarıdan alır (test ve DI).
func NewUserServiceWithDB(db *gorm.DB) IUserService {
	return &UserService{repo: repositories.NewUserRepositoryWithDB(db)}
}

// Register yeni kullanıcı kaydı. Rol verilmezse "user" atanır;
// super-admin kaydı yalnızca seeder üzerinden açılır.
func (s *UserService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || !strings.Contains(email, "@") {
		return nil, ErrUserRegistrationFailed
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if role == "" || role == models.RoleSuperAdmin {
		role = models.RoleUser
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrPasswordHashingFailed
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		configslog.SLog.Errorf("Register: kullanıcı kaydedilemedi (%s): %v", email, err)
		return nil, ErrUserRegistrationFailed
	}
	configslog.SLog.Infof("Yeni kullanıcı kaydı: ID %d, E-posta: %s, Rol: %s", user.ID, user.Email, user.Role)
	return user, nil
}

// Authenticate e-posta/şifre doğrular; pasif hesaplar giriş yapamaz.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrPasswordHashingFailed
	}
	user.PasswordHash = string(hashed)
	return s.repo.Update(models.ContextWithUserID(ctx, userID), user)
}

func (s *UserService) GetAllUsersPaginated(ctx context.Context, caller Caller, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if caller.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	params.Validate()
	users, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return paginated(users, params, totalCount), nil
}

// SetActive hesabı açar/kapatır (yalnızca super-admin).
func (s *UserService) SetActive(ctx context.Context, userID uint, active bool, caller Caller) error {
	if caller.Role != models.RoleSuperAdmin {
		return ErrForbidden
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	user.IsActive = active
	return s.repo.Update(models.ContextWithUserID(ctx, caller.UserID), user)
}

var _ IUserService = (*UserService)(nil)
