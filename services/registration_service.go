package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RegistrationServiceError kayıt servis hataları.
type RegistrationServiceError string

func (e RegistrationServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound       RegistrationServiceError = "etkinlik bulunamadı"
	ErrSubmissionNotFound  RegistrationServiceError = "başvuru bulunamadı"
	ErrFormNotPublished    RegistrationServiceError = "bu form henüz yayında değil"
	ErrInvalidFormType     RegistrationServiceError = "geçersiz form türü"
	ErrInvalidDecision     RegistrationServiceError = "geçersiz moderasyon kararı"
	ErrDuplicateSubmission RegistrationServiceError = "bu form için zaten bir başvurunuz var"
	ErrSubmissionFailed    RegistrationServiceError = "başvuru kaydedilemedi"
)

// ValidationError eksik zorunlu alanları adlarıyla taşır.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "zorunlu alanlar eksik: " + strings.Join(e.Fields, ", ")
}

// SubmitterIdentity başvuruyu yapan kişinin kimliği. Oturum yoksa UserID nil
// kalır ve ad/e-posta cevap haritasından çıkarılır.
type SubmitterIdentity struct {
	UserID *uint
	Name   string
	Email  string
}

// IRegistrationService form başvurusu ve moderasyon işlemleri için arayüz.
type IRegistrationService interface {
	SubmitForm(ctx context.Context, eventID uint, formType models.FormType, answers map[string]interface{}, identity SubmitterIdentity) (*models.FormSubmission, error)
	Moderate(ctx context.Context, submissionID uint, decision models.SubmissionStatus, additionalInfo string, caller Caller) (*models.FormSubmission, error)
	BulkModerate(ctx context.Context, eventID uint, formType models.FormType, ids []uint, decision models.SubmissionStatus, caller Caller) (int64, error)
	ListSubmissions(ctx context.Context, eventID uint, params queryparams.ListParams, caller Caller) (*queryparams.PaginatedResult, error)
}

// RegistrationService IRegistrationService arayüzünü uygular.
type RegistrationService struct {
	submissionRepo repositories.ISubmissionRepository
	eventRepo      repositories.IEventRepository
	notifier       INotificationDispatcher
}

// NewRegistrationService üretim kurulumunda global bağlantıyı kullanır.
func NewRegistrationService() IRegistrationService {
	return NewRegistrationServiceWithDB(configsdatabase.GetDB(), NewNotificationDispatcher())
}

// NewRegistrationServiceWithDB bağımlılıkları dışarıdan alır (test ve DI).
func NewRegistrationServiceWithDB(db *gorm.DB, notifier INotificationDispatcher) IRegistrationService {
	return &RegistrationService{
		submissionRepo: repositories.NewSubmissionRepositoryWithDB(db),
		eventRepo:      repositories.NewEventRepositoryWithDB(db),
		notifier:       notifier,
	}
}

// SubmitForm yayın kontrolü ve zorunlu alan doğrulamasından geçen başvuruyu
// pending durumunda kaydeder.
func (s *RegistrationService) SubmitForm(ctx context.Context, eventID uint, formType models.FormType, answers map[string]interface{}, identity SubmitterIdentity) (*models.FormSubmission, error) {
	if !formType.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormType, formType)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	// Yayın kapısı: form yoksa veya taslaksa başvuru alınmaz.
	form := event.FormOfType(formType)
	if form == nil || form.Status != models.FormStatusPublished {
		return nil, ErrFormNotPublished
	}

	if answers == nil {
		answers = map[string]interface{}{}
	}

	// Zorunlu soru doğrulaması; eksik alanların tamamı raporlanır.
	var missing []string
	for _, q := range form.Questions {
		if q.IsRequired && stringValue(answers[q.FieldKey]) == "" {
			missing = append(missing, q.FieldKey)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	name := ExtractName(answers)
	if name == UnknownName && identity.Name != "" {
		name = identity.Name
	}
	email := ExtractEmail(answers)
	if email == NoEmail && identity.Email != "" {
		email = identity.Email
	}

	// Mükerrerlik: aynı (etkinlik, kullanıcı/e-posta, form türü) için
	// reddedilmemiş bir başvuru varsa reddedilir. Migrasyondaki kısmi unique
	// index eş zamanlı gönderim yarışını da kapatır.
	dedupEmail := ""
	if email != NoEmail {
		dedupEmail = email
	}
	if _, err := s.submissionRepo.FindDuplicate(ctx, eventID, formType, identity.UserID, dedupEmail); err == nil {
		return nil, ErrDuplicateSubmission
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	submission := &models.FormSubmission{
		EventID:  eventID,
		FormType: formType,
		UserID:   identity.UserID,
		Name:     name,
		Email:    email,
		Answers:  datatypes.JSONMap(answers),
		Status:   models.SubmissionStatusPending,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		configslog.Log.Error("SubmitForm: başvuru kaydedilemedi",
			zap.Uint("eventID", eventID), zap.String("formType", string(formType)), zap.Error(err))
		return nil, ErrSubmissionFailed
	}

	configslog.SLog.Infof("Yeni başvuru alındı: etkinlik=%d tür=%s başvuru=%d", eventID, formType, submission.ID)
	return submission, nil
}

// Moderate kararı koşulsuz uygular; aynı kararı iki kez uygulamak etkisiz bir
// tekrar olur (idempotent). Karar sonrası bildirim en-iyi-çaba ile gönderilir,
// bildirim hatası moderasyonu geri almaz.
func (s *RegistrationService) Moderate(ctx context.Context, submissionID uint, decision models.SubmissionStatus, additionalInfo string, caller Caller) (*models.FormSubmission, error) {
	if decision != models.SubmissionStatusApproved && decision != models.SubmissionStatusRejected {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDecision, decision)
	}

	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	event, err := s.eventRepo.FindByID(ctx, submission.EventID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(caller, event, ActionModerate); err != nil {
		return nil, err
	}

	updated, err := s.submissionRepo.UpdateStatus(models.ContextWithUserID(ctx, caller.UserID), submissionID, decision)
	if err != nil {
		return nil, err
	}

	if updated.Email != "" && updated.Email != NoEmail {
		kind := DecisionKind(updated.FormType, decision)
		result := s.notifier.Notify(ctx, kind, NotificationPayload{
			ID:             fmt.Sprintf("submission-%d", updated.ID),
			To:             updated.Email,
			Name:           updated.Name,
			EventTitle:     event.Title,
			AdditionalInfo: additionalInfo,
			EventID:        &event.ID,
			SubmissionID:   &updated.ID,
		})
		if !result.Success {
			configslog.Log.Warn("Moderate: karar bildirimi gönderilemedi",
				zap.Uint("submissionID", updated.ID), zap.String("error", result.Error))
		}
	}

	configslog.SLog.Infof("Başvuru modere edildi: başvuru=%d karar=%s moderatör=%d", submissionID, decision, caller.UserID)
	return updated, nil
}

// BulkModerate id listesini tek geçişte günceller; etkinlik/form türü kapsamı
// dışındaki id'ler sessizce elenir ve sayıya girmez.
func (s *RegistrationService) BulkModerate(ctx context.Context, eventID uint, formType models.FormType, ids []uint, decision models.SubmissionStatus, caller Caller) (int64, error) {
	if decision != models.SubmissionStatusApproved && decision != models.SubmissionStatusRejected {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDecision, decision)
	}
	if !formType.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidFormType, formType)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	if err := Authorize(caller, event, ActionModerate); err != nil {
		return 0, err
	}

	modified, err := s.submissionRepo.BulkUpdateStatus(models.ContextWithUserID(ctx, caller.UserID), eventID, formType, ids, decision)
	if err != nil {
		return 0, err
	}
	configslog.SLog.Infof("Toplu moderasyon: etkinlik=%d tür=%s karar=%s istenen=%d güncellenen=%d",
		eventID, formType, decision, len(ids), modified)
	return modified, nil
}

// ListSubmissions organizatörün başvuru listesini filtreli ve sayfalı döndürür.
func (s *RegistrationService) ListSubmissions(ctx context.Context, eventID uint, params queryparams.ListParams, caller Caller) (*queryparams.PaginatedResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if err := Authorize(caller, event, ActionView); err != nil {
		return nil, err
	}

	params.Validate()
	submissions, totalCount, err := s.submissionRepo.FindAllByEventPaginated(ctx, eventID, params)
	if err != nil {
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: submissions,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

var _ IRegistrationService = (*RegistrationService)(nil)
