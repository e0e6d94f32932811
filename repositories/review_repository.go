package repositories

import (
	"context"
	"errors"
	"time"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IReviewRepository değerlendirme veritabanı işlemleri için arayüz.
type IReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.Review, error)
	FindAllByEventPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.Review, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ReviewStatus) error
	UpdateReply(ctx context.Context, id uint, reply string, repliedBy uint) error
}

type ReviewRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Review]
}

// NewReviewRepository global bağlantı ile repository oluşturur.
func NewReviewRepository() IReviewRepository {
	return NewReviewRepositoryWithDB(configsdatabase.GetDB())
}

// NewReviewRepositoryWithDB verilen bağlantı (veya tx) ile repository oluşturur.
func NewReviewRepositoryWithDB(db *gorm.DB) IReviewRepository {
	base := NewBaseRepository[models.Review](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "rating", "status"})
	return &ReviewRepository{db: db, base: base}
}

func (r *ReviewRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review == nil || review.EventID == 0 || review.UserID == 0 {
		return errors.New("geçersiz değerlendirme kaydı")
	}
	return r.getDB(ctx).Create(review).Error
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Review ID")
	}
	var review models.Review
	err := r.getDB(ctx).Preload("Event").Preload("User").First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ReviewRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.getDB(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ReviewRepository.FindByEventAndUser: DB error", zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) FindAllByEventPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.Review, int64, error) {
	if eventID == 0 {
		return nil, 0, errors.New("geçersiz Event ID")
	}
	var reviews []models.Review
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Review{}).Where("event_id = ?", eventID)
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("ReviewRepository.FindAllByEventPaginated: count error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return reviews, 0, nil
	}

	sortBy := params.SortBy
	if !r.base.AllowedSortColumn(sortBy) {
		sortBy = "created_at"
	}
	err := query.Preload("User").
		Order(sortBy + " " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&reviews).Error
	if err != nil {
		configslog.Log.Error("ReviewRepository.FindAllByEventPaginated: find error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, totalCount, err
	}
	return reviews, totalCount, nil
}

func (r *ReviewRepository) UpdateStatus(ctx context.Context, id uint, status models.ReviewStatus) error {
	result := r.getDB(ctx).Model(&models.Review{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		configslog.Log.Error("ReviewRepository.UpdateStatus: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) UpdateReply(ctx context.Context, id uint, reply string, repliedBy uint) error {
	now := time.Now().UTC()
	result := r.getDB(ctx).Model(&models.Review{}).Where("id = ?", id).
		Updates(map[string]interface{}{"reply": reply, "replied_at": now, "replied_by": repliedBy})
	if result.Error != nil {
		configslog.Log.Error("ReviewRepository.UpdateReply: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IReviewRepository = (*ReviewRepository)(nil)
