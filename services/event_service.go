package services

import (
	"context"
	"errors"
	"fmt"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventServiceError etkinlik servis hataları.
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventTitleRequired EventServiceError = "etkinlik başlığı zorunludur"
	ErrEventTimeRequired  EventServiceError = "etkinlik başlangıç zamanı zorunludur"
	ErrEventInvalidInput  EventServiceError = "geçersiz girdi verisi"
	ErrEventCreateFailed  EventServiceError = "etkinlik oluşturulamadı"
	ErrEventUpdateFailed  EventServiceError = "etkinlik güncellenemedi"
)

// IEventService etkinlik işlemleri için arayüz.
type IEventService interface {
	CreateEvent(ctx context.Context, caller Caller, event models.Event) (*models.Event, error)
	GetEventByID(ctx context.Context, id uint) (*models.Event, error)
	GetEventByKey(ctx context.Context, key string) (*models.Event, error)
	GetEventsForOrganizer(ctx context.Context, caller Caller, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAllEventsPaginated(ctx context.Context, caller Caller, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateEvent(ctx context.Context, id uint, caller Caller, updates models.Event) error
	SetFormStatus(ctx context.Context, eventID uint, formType models.FormType, status models.FormStatus, caller Caller) error
	SetFormQuestions(ctx context.Context, eventID uint, formType models.FormType, questions []models.EventQuestion, caller Caller) error
	DeleteEvent(ctx context.Context, id uint, caller Caller) error
}

// EventService IEventService arayüzünü uygular.
type EventService struct {
	repo repositories.IEventRepository
}

// NewEventService üretim kurulumunda global bağlantıyı kullanır.
func NewEventService() IEventService {
	return NewEventServiceWithDB(configsdatabase.GetDB())
}

// NewEventServiceWithDB bağlantıyı dışarıdan alır (test ve DI).
func NewEventServiceWithDB(db *gorm.DB) IEventService {
	return &EventService{repo: repositories.NewEventRepositoryWithDB(db)}
}

// ValidateEvent temel validasyonları yapar.
func ValidateEvent(event models.Event) error {
	if event.Title == "" {
		return ErrEventTitleRequired
	}
	if event.StartsAt.IsZero() {
		return ErrEventTimeRequired
	}
	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		return fmt.Errorf("%w: bitiş zamanı başlangıçtan önce olamaz", ErrEventInvalidInput)
	}
	if event.Capacity < 0 {
		return fmt.Errorf("%w: kapasite negatif olamaz", ErrEventInvalidInput)
	}
	return nil
}

// CreateEvent yeni etkinliği, public anahtarını ve üç taslak formunu oluşturur.
func (s *EventService) CreateEvent(ctx context.Context, caller Caller, event models.Event) (*models.Event, error) {
	if caller.IsAnonymous() {
		return nil, ErrUnauthorized
	}
	if caller.Role != models.RolePlanner && caller.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	if err := ValidateEvent(event); err != nil {
		return nil, err
	}

	event.OrganizerID = caller.UserID
	event.Key = uuid.NewString()
	event.IsEnabled = true
	event.Forms = make([]models.EventForm, 0, len(models.FormTypes))
	for _, formType := range models.FormTypes {
		event.Forms = append(event.Forms, models.EventForm{
			FormType: formType,
			Status:   models.FormStatusDraft,
		})
	}

	if err := s.repo.Create(models.ContextWithUserID(ctx, caller.UserID), &event); err != nil {
		configslog.Log.Error("CreateEvent: kayıt başarısız", zap.Uint("organizerID", caller.UserID), zap.Error(err))
		return nil, ErrEventCreateFailed
	}
	configslog.SLog.Infof("Etkinlik oluşturuldu: ID %d, Başlık: %s, Key: %s", event.ID, event.Title, event.Key)
	return &event, nil
}

func (s *EventService) GetEventByID(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// GetEventByKey public sayfa için anahtar ile etkinliği getirir.
// Kapalı etkinlikler dışarıya görünmez.
func (s *EventService) GetEventByKey(ctx context.Context, key string) (*models.Event, error) {
	event, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !event.IsEnabled {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) GetEventsForOrganizer(ctx context.Context, caller Caller, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if caller.IsAnonymous() {
		return nil, ErrUnauthorized
	}
	params.Validate()
	events, totalCount, err := s.repo.FindAllByOrganizerPaginated(ctx, caller.UserID, params)
	if err != nil {
		return nil, err
	}
	return paginated(events, params, totalCount), nil
}

func (s *EventService) GetAllEventsPaginated(ctx context.Context, caller Caller, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if caller.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	params.Validate()
	events, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return paginated(events, params, totalCount), nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uint, caller Caller, updates models.Event) error {
	if err := ValidateEvent(updates); err != nil {
		return err
	}
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(caller, event, ActionManage); err != nil {
		return err
	}

	event.Title = updates.Title
	event.Description = updates.Description
	event.LocationText = updates.LocationText
	event.StartsAt = updates.StartsAt
	event.EndsAt = updates.EndsAt
	event.Capacity = updates.Capacity
	event.IsEnabled = updates.IsEnabled

	if err := s.repo.Update(models.ContextWithUserID(ctx, caller.UserID), event); err != nil {
		configslog.Log.Error("UpdateEvent: güncelleme başarısız", zap.Uint("id", id), zap.Error(err))
		return ErrEventUpdateFailed
	}
	configslog.SLog.Infof("Etkinlik güncellendi: ID %d (Güncelleyen: %d)", id, caller.UserID)
	return nil
}

// SetFormStatus formu yayına alır/taslağa çevirir.
func (s *EventService) SetFormStatus(ctx context.Context, eventID uint, formType models.FormType, status models.FormStatus, caller Caller) error {
	if !formType.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidFormType, formType)
	}
	if status != models.FormStatusDraft && status != models.FormStatusPublished {
		return fmt.Errorf("%w: geçersiz form durumu %s", ErrEventInvalidInput, status)
	}

	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := Authorize(caller, event, ActionManage); err != nil {
		return err
	}

	if err := s.repo.UpdateFormStatus(models.ContextWithUserID(ctx, caller.UserID), eventID, formType, status); err != nil {
		return err
	}
	configslog.SLog.Infof("Form durumu değişti: etkinlik=%d tür=%s durum=%s", eventID, formType, status)
	return nil
}

// SetFormQuestions formun soru listesini komple değiştirir.
func (s *EventService) SetFormQuestions(ctx context.Context, eventID uint, formType models.FormType, questions []models.EventQuestion, caller Caller) error {
	if !formType.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidFormType, formType)
	}
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := Authorize(caller, event, ActionManage); err != nil {
		return err
	}
	form := event.FormOfType(formType)
	if form == nil {
		return ErrFormNotPublished
	}
	for _, q := range questions {
		if q.FieldKey == "" || q.Label == "" {
			return fmt.Errorf("%w: soru anahtarı ve etiketi zorunludur", ErrEventInvalidInput)
		}
	}
	return s.repo.ReplaceFormQuestions(models.ContextWithUserID(ctx, caller.UserID), form.ID, questions)
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint, caller Caller) error {
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(caller, event, ActionManage); err != nil {
		return err
	}
	if err := s.repo.Delete(models.ContextWithUserID(ctx, caller.UserID), event, caller.UserID); err != nil {
		return err
	}
	configslog.SLog.Infof("Etkinlik silindi: ID %d (Silen: %d)", id, caller.UserID)
	return nil
}

func paginated(data interface{}, params queryparams.ListParams, totalCount int64) *queryparams.PaginatedResult {
	return &queryparams.PaginatedResult{
		Data: data,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}
}

var _ IEventService = (*EventService)(nil)
