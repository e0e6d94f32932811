package repositories

import (
	"context"
	"errors"
	"strings"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type UserRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.User]
}

// NewUserRepository global bağlantı ile repository oluşturur.
func NewUserRepository() IUserRepository {
	return NewUserRepositoryWithDB(configsdatabase.GetDB())
}

// NewUserRepositoryWithDB verilen bağlantı (veya tx) ile repository oluşturur.
func NewUserRepositoryWithDB(db *gorm.DB) IUserRepository {
	base := NewBaseRepository[models.User](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "email", "role", "is_active"})
	return &UserRepository{db: db, base: base}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" {
		return errors.New("geçersiz kullanıcı kaydı")
	}
	return r.getDB(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var user models.User
	err := r.getDB(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errors.New("geçersiz e-posta")
	}
	var user models.User
	err := r.getDB(ctx).Where("LOWER(email) = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == 0 {
		return errors.New("güncellenecek kullanıcı geçerli değil")
	}
	return r.getDB(ctx).Save(user).Error
}

func (r *UserRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error) {
	var users []models.User
	var totalCount int64
	query := r.getDB(ctx).Model(&models.User{})

	if params.Name != "" {
		term := "%" + strings.ToLower(params.Name) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}
	if params.Status != "" {
		query = query.Where("is_active = ?", params.Status == "true")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("UserRepository.FindAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return users, 0, nil
	}

	sortBy := params.SortBy
	if !r.base.AllowedSortColumn(sortBy) {
		sortBy = "created_at"
	}
	err := query.Order(sortBy + " " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&users).Error
	if err != nil {
		configslog.Log.Error("UserRepository.FindAllPaginated: find error", zap.Error(err))
		return nil, totalCount, err
	}
	return users, totalCount, nil
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

var _ IUserRepository = (*UserRepository)(nil)
