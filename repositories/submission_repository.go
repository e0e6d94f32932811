package repositories

import (
	"context"
	"errors"
	"time"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/pkg/turkishsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISubmissionRepository form başvurusu veritabanı işlemleri için arayüz.
type ISubmissionRepository interface {
	Create(ctx context.Context, submission *models.FormSubmission) error
	FindByID(ctx context.Context, id uint) (*models.FormSubmission, error)
	FindDuplicate(ctx context.Context, eventID uint, formType models.FormType, userID *uint, email string) (*models.FormSubmission, error)
	FindAllByEventPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.FormSubmission, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.SubmissionStatus) (*models.FormSubmission, error)
	BulkUpdateStatus(ctx context.Context, eventID uint, formType models.FormType, ids []uint, status models.SubmissionStatus) (int64, error)
	IncrementCheckIn(ctx context.Context, id uint, operatorID uint) (*models.FormSubmission, error)
	FindApprovedAttendees(ctx context.Context, eventID uint) ([]models.FormSubmission, error)
	FindRecentCheckIns(ctx context.Context, eventID uint, limit int) ([]models.FormSubmission, error)
}

type SubmissionRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.FormSubmission]
}

// NewSubmissionRepository global bağlantı ile repository oluşturur.
func NewSubmissionRepository() ISubmissionRepository {
	return NewSubmissionRepositoryWithDB(configsdatabase.GetDB())
}

// NewSubmissionRepositoryWithDB verilen bağlantı (veya tx) ile repository oluşturur.
func NewSubmissionRepositoryWithDB(db *gorm.DB) ISubmissionRepository {
	base := NewBaseRepository[models.FormSubmission](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "email", "status", "check_in_count", "last_checked_in_at"})
	return &SubmissionRepository{db: db, base: base}
}

func (r *SubmissionRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *models.FormSubmission) error {
	if submission == nil || submission.EventID == 0 {
		return errors.New("geçersiz başvuru kaydı")
	}
	return r.getDB(ctx).Create(submission).Error
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (*models.FormSubmission, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Submission ID")
	}
	var submission models.FormSubmission
	err := r.getDB(ctx).Preload("Event").First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SubmissionRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &submission, nil
}

// FindDuplicate aynı (etkinlik, kullanıcı/e-posta, form türü) için reddedilmemiş
// mevcut başvuruyu arar. Kayıt yoksa ErrNotFound döner.
func (r *SubmissionRepository) FindDuplicate(ctx context.Context, eventID uint, formType models.FormType, userID *uint, email string) (*models.FormSubmission, error) {
	query := r.getDB(ctx).Model(&models.FormSubmission{}).
		Where("event_id = ? AND form_type = ? AND status <> ?", eventID, formType, models.SubmissionStatusRejected)

	switch {
	case userID != nil && *userID != 0:
		query = query.Where("user_id = ?", *userID)
	case email != "":
		query = query.Where("LOWER(email) = LOWER(?)", email)
	default:
		return nil, ErrNotFound // Kimlik bilgisi yoksa mükerrerlik aranamaz
	}

	var submission models.FormSubmission
	err := query.First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SubmissionRepository.FindDuplicate: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return &submission, nil
}

// applySubmissionFilters ortak filtre ve sıralama mantığı.
func (r *SubmissionRepository) applySubmissionFilters(query *gorm.DB, params queryparams.ListParams) *gorm.DB {
	if params.FormType != "" {
		query = query.Where("form_type = ?", params.FormType)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Name != "" {
		nameFragment, nameArgs := turkishsearch.SQLFilter("name", params.Name)
		emailFragment, emailArgs := turkishsearch.SQLFilter("email", params.Name)
		query = query.Where(query.Session(&gorm.Session{NewDB: true}).
			Where(nameFragment, nameArgs...).
			Or(emailFragment, emailArgs...))
	}

	sortBy := params.SortBy
	if !r.base.AllowedSortColumn(sortBy) {
		sortBy = "created_at"
	}
	return query.Order(sortBy + " " + params.OrderBy)
}

func (r *SubmissionRepository) FindAllByEventPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.FormSubmission, int64, error) {
	if eventID == 0 {
		return nil, 0, errors.New("geçersiz Event ID")
	}
	var submissions []models.FormSubmission
	var totalCount int64

	query := r.getDB(ctx).Model(&models.FormSubmission{}).Where("event_id = ?", eventID)
	query = r.applySubmissionFilters(query, params)

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("SubmissionRepository.FindAllByEventPaginated: count error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return submissions, 0, nil
	}

	err := query.Limit(params.PerPage).Offset(params.CalculateOffset()).Find(&submissions).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.FindAllByEventPaginated: find error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, totalCount, err
	}
	return submissions, totalCount, nil
}

// UpdateStatus durumu koşulsuz günceller (idempotent geçiş) ve güncel kaydı döner.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id uint, status models.SubmissionStatus) (*models.FormSubmission, error) {
	db := r.getDB(ctx)
	result := db.Model(&models.FormSubmission{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		configslog.Log.Error("SubmissionRepository.UpdateStatus: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// BulkUpdateStatus id listesini (etkinlik, form türü) kapsamında tek UPDATE ile
// günceller. Kapsam dışı id'ler sessizce elenir; dönen sayı eşleşen satır
// sayısıdır (zaten o durumda olan satırlar da sayılır).
func (r *SubmissionRepository) BulkUpdateStatus(ctx context.Context, eventID uint, formType models.FormType, ids []uint, status models.SubmissionStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.getDB(ctx).Model(&models.FormSubmission{}).
		Where("event_id = ? AND form_type = ? AND id IN ?", eventID, formType, ids).
		Update("status", status)
	if result.Error != nil {
		configslog.Log.Error("SubmissionRepository.BulkUpdateStatus: DB error",
			zap.Uint("eventID", eventID), zap.Int("ids", len(ids)), zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementCheckIn check-in sayacını atomik UPDATE ile artırır.
// Okuma-değiştirme-yazma yapılmaz; eş zamanlı taramalarda sayaç kaybolmaz.
// İlk girişte checked_in_at dolar, sonraki girişler yalnızca sayacı ve
// last_checked_in_at'i günceller.
func (r *SubmissionRepository) IncrementCheckIn(ctx context.Context, id uint, operatorID uint) (*models.FormSubmission, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Submission ID")
	}
	db := r.getDB(ctx)
	now := time.Now().UTC()
	result := db.Model(&models.FormSubmission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_checked_in":      true,
			"check_in_count":     gorm.Expr("check_in_count + 1"),
			"checked_in_at":      gorm.Expr("COALESCE(checked_in_at, ?)", now),
			"last_checked_in_at": now,
			"checked_in_by":      operatorID,
		})
	if result.Error != nil {
		configslog.Log.Error("SubmissionRepository.IncrementCheckIn: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// FindApprovedAttendees istatistik için onaylı katılımcı başvurularını döndürür.
func (r *SubmissionRepository) FindApprovedAttendees(ctx context.Context, eventID uint) ([]models.FormSubmission, error) {
	var submissions []models.FormSubmission
	err := r.getDB(ctx).
		Where("event_id = ? AND form_type = ? AND status = ?",
			eventID, models.FormTypeAttendee, models.SubmissionStatusApproved).
		Find(&submissions).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.FindApprovedAttendees: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return submissions, nil
}

// FindRecentCheckIns son check-in yapılan başvuruları yeni olandan eskiye döndürür.
func (r *SubmissionRepository) FindRecentCheckIns(ctx context.Context, eventID uint, limit int) ([]models.FormSubmission, error) {
	var submissions []models.FormSubmission
	err := r.getDB(ctx).
		Where("event_id = ? AND is_checked_in = ?", eventID, true).
		Order("last_checked_in_at DESC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.FindRecentCheckIns: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return submissions, nil
}

var _ ISubmissionRepository = (*SubmissionRepository)(nil)
