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

// IEventRepository etkinlik veritabanı işlemleri için arayüz.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByKey(ctx context.Context, key string) (*models.Event, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Event, int64, error)
	FindAllByOrganizerPaginated(ctx context.Context, organizerID uint, params queryparams.ListParams) ([]models.Event, int64, error)
	Update(ctx context.Context, event *models.Event) error
	UpdateFormStatus(ctx context.Context, eventID uint, formType models.FormType, status models.FormStatus) error
	ReplaceFormQuestions(ctx context.Context, formID uint, questions []models.EventQuestion) error
	Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error
	CountByOrganizer(ctx context.Context, organizerID uint) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type EventRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Event]
}

// NewEventRepository global bağlantı ile repository oluşturur.
func NewEventRepository() IEventRepository {
	return NewEventRepositoryWithDB(configsdatabase.GetDB())
}

// NewEventRepositoryWithDB verilen bağlantı (veya tx) ile repository oluşturur.
func NewEventRepositoryWithDB(db *gorm.DB) IEventRepository {
	base := NewBaseRepository[models.Event](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "title", "starts_at", "is_enabled"})
	return &EventRepository{db: db, base: base}
}

func (r *EventRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil || event.OrganizerID == 0 || event.Key == "" {
		return errors.New("geçersiz etkinlik kaydı")
	}
	return r.getDB(ctx).Create(event).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var event models.Event
	err := r.getDB(ctx).
		Preload("Forms.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) FindByKey(ctx context.Context, key string) (*models.Event, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var event models.Event
	err := r.getDB(ctx).
		Preload("Forms.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Where("key = ?", key).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByKey: DB error", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// applyEventFilters ortak filtre ve sıralama mantığı.
func (r *EventRepository) applyEventFilters(query *gorm.DB, params queryparams.ListParams) *gorm.DB {
	if params.Name != "" {
		sqlFragment, args := turkishsearch.SQLFilter("events.title", params.Name)
		query = query.Where(sqlFragment, args...)
	}
	if params.Status != "" {
		query = query.Where("events.is_enabled = ?", params.Status == "true")
	}

	sortBy := params.SortBy
	if !r.base.AllowedSortColumn(sortBy) {
		if sortBy != "" {
			configslog.SLog.Warnf("Geçersiz Event sıralama alanı istendi: %s", sortBy)
		}
		sortBy = "created_at"
	}
	return query.Order("events." + sortBy + " " + params.OrderBy)
}

func (r *EventRepository) findPaginated(ctx context.Context, scope func(*gorm.DB) *gorm.DB, params queryparams.ListParams) ([]models.Event, int64, error) {
	var events []models.Event
	var totalCount int64

	query := scope(r.getDB(ctx).Model(&models.Event{}))
	query = r.applyEventFilters(query, params)

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("EventRepository: count error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return events, 0, nil
	}

	err := query.Preload("Forms").
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("EventRepository: find error", zap.Error(err))
		return nil, totalCount, err
	}
	return events, totalCount, nil
}

func (r *EventRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Event, int64, error) {
	return r.findPaginated(ctx, func(q *gorm.DB) *gorm.DB { return q }, params)
}

func (r *EventRepository) FindAllByOrganizerPaginated(ctx context.Context, organizerID uint, params queryparams.ListParams) ([]models.Event, int64, error) {
	if organizerID == 0 {
		return nil, 0, errors.New("geçersiz organizatör ID")
	}
	return r.findPaginated(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("events.organizer_id = ?", organizerID)
	}, params)
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	if event == nil || event.ID == 0 {
		return errors.New("güncellenecek etkinlik geçerli değil")
	}
	return r.getDB(ctx).Omit("Forms").Save(event).Error
}

// UpdateFormStatus ilgili formun yayın durumunu tek UPDATE ile değiştirir.
func (r *EventRepository) UpdateFormStatus(ctx context.Context, eventID uint, formType models.FormType, status models.FormStatus) error {
	result := r.getDB(ctx).Model(&models.EventForm{}).
		Where("event_id = ? AND form_type = ?", eventID, formType).
		Update("status", status)
	if result.Error != nil {
		configslog.Log.Error("EventRepository.UpdateFormStatus: DB error",
			zap.Uint("eventID", eventID), zap.String("formType", string(formType)), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceFormQuestions formun soru listesini komple değiştirir.
func (r *EventRepository) ReplaceFormQuestions(ctx context.Context, formID uint, questions []models.EventQuestion) error {
	if formID == 0 {
		return errors.New("geçersiz EventForm ID")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("event_form_id = ?", formID).Delete(&models.EventQuestion{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].EventFormID = formID
			questions[i].SortOrder = i
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

// Delete etkinliği soft delete yapar ve DeletedBy'ı işler.
func (r *EventRepository) Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error {
	if event == nil || event.ID == 0 {
		return errors.New("silinecek etkinlik geçerli değil")
	}
	result := r.getDB(ctx).Model(event).
		Where("id = ? AND deleted_at IS NULL", event.ID).
		Updates(map[string]interface{}{"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"), "deleted_by": &deletedByUserID})
	if result.Error != nil {
		configslog.Log.Error("EventRepository.Delete: DB error", zap.Uint("id", event.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) CountByOrganizer(ctx context.Context, organizerID uint) (int64, error) {
	if organizerID == 0 {
		return 0, errors.New("geçersiz organizatör ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Event{}).Where("organizer_id = ?", organizerID).Count(&count).Error
	return count, err
}

func (r *EventRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

var _ IEventRepository = (*EventRepository)(nil)
