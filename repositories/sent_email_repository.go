package repositories

import (
	"context"
	"errors"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/pkg/turkishsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISentEmailRepository e-posta denetim kayıtları için arayüz.
type ISentEmailRepository interface {
	Create(ctx context.Context, email *models.SentEmail) error
	MarkSent(ctx context.Context, id uint) error
	MarkFailed(ctx context.Context, id uint, errMsg string) error
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.SentEmail, int64, error)
}

type SentEmailRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.SentEmail]
}

// NewSentEmailRepository global bağlantı ile repository oluşturur.
func NewSentEmailRepository() ISentEmailRepository {
	return NewSentEmailRepositoryWithDB(configsdatabase.GetDB())
}

// NewSentEmailRepositoryWithDB verilen bağlantı (veya tx) ile repository oluşturur.
func NewSentEmailRepositoryWithDB(db *gorm.DB) ISentEmailRepository {
	base := NewBaseRepository[models.SentEmail](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "recipient", "status", "kind"})
	return &SentEmailRepository{db: db, base: base}
}

func (r *SentEmailRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *SentEmailRepository) Create(ctx context.Context, email *models.SentEmail) error {
	if email == nil || email.Recipient == "" {
		return errors.New("geçersiz e-posta kaydı")
	}
	return r.getDB(ctx).Create(email).Error
}

func (r *SentEmailRepository) MarkSent(ctx context.Context, id uint) error {
	return r.updateStatus(ctx, id, models.EmailStatusSent, "")
}

func (r *SentEmailRepository) MarkFailed(ctx context.Context, id uint, errMsg string) error {
	return r.updateStatus(ctx, id, models.EmailStatusFailed, errMsg)
}

func (r *SentEmailRepository) updateStatus(ctx context.Context, id uint, status models.EmailStatus, errMsg string) error {
	result := r.getDB(ctx).Model(&models.SentEmail{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "error": errMsg})
	if result.Error != nil {
		configslog.Log.Error("SentEmailRepository.updateStatus: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SentEmailRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.SentEmail, int64, error) {
	var emails []models.SentEmail
	var totalCount int64

	query := r.getDB(ctx).Model(&models.SentEmail{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Name != "" {
		sqlFragment, args := turkishsearch.SQLFilter("recipient", params.Name)
		query = query.Where(sqlFragment, args...)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("SentEmailRepository.FindAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return emails, 0, nil
	}

	sortBy := params.SortBy
	if !r.base.AllowedSortColumn(sortBy) {
		sortBy = "created_at"
	}
	err := query.Order(sortBy + " " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&emails).Error
	if err != nil {
		configslog.Log.Error("SentEmailRepository.FindAllPaginated: find error", zap.Error(err))
		return nil, totalCount, err
	}
	return emails, totalCount, nil
}

var _ ISentEmailRepository = (*SentEmailRepository)(nil)
