package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/mailer"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationKind mesaj şablon ailesini seçer.
type NotificationKind string

const (
	KindAttendeeApproval   NotificationKind = "attendee-approval"
	KindAttendeeRejection  NotificationKind = "attendee-rejection"
	KindVolunteerApproval  NotificationKind = "volunteer-approval"
	KindVolunteerRejection NotificationKind = "volunteer-rejection"
	KindSpeakerApproval    NotificationKind = "speaker-approval"
	KindSpeakerRejection   NotificationKind = "speaker-rejection"
	KindTicket             NotificationKind = "ticket"
	KindReminder           NotificationKind = "reminder"
	KindCustom             NotificationKind = "custom"
)

// DecisionKind form türü ve karara göre bildirim türünü seçer.
// Şablon seçimi string yer tutucu yerine gerçek bir dallanmadır.
func DecisionKind(formType models.FormType, decision models.SubmissionStatus) NotificationKind {
	approved := decision == models.SubmissionStatusApproved
	switch formType {
	case models.FormTypeVolunteer:
		if approved {
			return KindVolunteerApproval
		}
		return KindVolunteerRejection
	case models.FormTypeSpeaker:
		if approved {
			return KindSpeakerApproval
		}
		return KindSpeakerRejection
	default:
		if approved {
			return KindAttendeeApproval
		}
		return KindAttendeeRejection
	}
}

// NotificationPayload tek bir bildirimin girdileri.
type NotificationPayload struct {
	ID             string // Batch sonuçlarında eşleştirme için
	To             string
	Name           string
	EventTitle     string
	AdditionalInfo string // Red bildirimlerine eklenen açıklama
	Subject        string // custom türü için
	Body           string // custom türü için
	EventID        *uint
	SubmissionID   *uint
}

// DeliveryResult tek bildirimin sonucu. Hata fırlatılmaz, sonuçta taşınır.
type DeliveryResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error,omitempty"`
}

// NotificationServiceError bildirim servis hataları.
type NotificationServiceError string

func (e NotificationServiceError) Error() string { return string(e) }

const (
	ErrUnknownNotificationKind NotificationServiceError = "geçersiz bildirim türü"
	ErrInvalidRecipient        NotificationServiceError = "geçersiz alıcı adresi"
)

// INotificationDispatcher bildirim gönderimi için arayüz.
type INotificationDispatcher interface {
	Notify(ctx context.Context, kind NotificationKind, payload NotificationPayload) DeliveryResult
	NotifyBatch(ctx context.Context, kind NotificationKind, payloads []NotificationPayload) []DeliveryResult
}

// NotificationDispatcher içerik üretir, gönderimi transport'a devreder ve
// her denemeyi SentEmail tablosuna işler.
type NotificationDispatcher struct {
	transport mailer.IMailTransport
	sentRepo  repositories.ISentEmailRepository
}

// NewNotificationDispatcher üretim kurulumunda SMTP transport kullanır.
func NewNotificationDispatcher() INotificationDispatcher {
	return &NotificationDispatcher{
		transport: mailer.NewSMTPTransport(),
		sentRepo:  repositories.NewSentEmailRepository(),
	}
}

// NewNotificationDispatcherWithDeps transport ve bağlantıyı dışarıdan alır.
func NewNotificationDispatcherWithDeps(db *gorm.DB, transport mailer.IMailTransport) INotificationDispatcher {
	return &NotificationDispatcher{
		transport: transport,
		sentRepo:  repositories.NewSentEmailRepositoryWithDB(db),
	}
}

// Notify tek bildirim gönderir. Başarısızlık denetim kaydına işlenir ve
// sonuç olarak döner; hiçbir durumda panic/throw yoktur.
func (s *NotificationDispatcher) Notify(ctx context.Context, kind NotificationKind, payload NotificationPayload) DeliveryResult {
	subject, body, err := composeMessage(kind, payload)
	if err != nil {
		return DeliveryResult{Success: false, ID: payload.ID, Error: err.Error()}
	}

	audit := &models.SentEmail{
		Recipient:    payload.To,
		Subject:      subject,
		Body:         body,
		Kind:         string(kind),
		Status:       models.EmailStatusPending,
		EventID:      payload.EventID,
		SubmissionID: payload.SubmissionID,
	}
	if err := s.sentRepo.Create(ctx, audit); err != nil {
		// Denetim kaydı yazılamasa da gönderim denenir.
		configslog.Log.Error("Notify: denetim kaydı oluşturulamadı", zap.String("to", payload.To), zap.Error(err))
	}

	if !strings.Contains(payload.To, "@") {
		s.markFailed(ctx, audit, string(ErrInvalidRecipient)+": "+payload.To)
		return DeliveryResult{Success: false, ID: payload.ID, Error: string(ErrInvalidRecipient)}
	}

	result := s.transport.Send(mailer.Message{To: payload.To, Subject: subject, Text: body})
	if !result.Success {
		s.markFailed(ctx, audit, result.Error)
		configslog.Log.Warn("Notify: gönderim başarısız",
			zap.String("kind", string(kind)), zap.String("to", payload.To), zap.String("error", result.Error))
		return DeliveryResult{Success: false, ID: payload.ID, Error: result.Error}
	}

	if audit.ID != 0 {
		if err := s.sentRepo.MarkSent(ctx, audit.ID); err != nil {
			configslog.Log.Error("Notify: denetim kaydı güncellenemedi", zap.Uint("id", audit.ID), zap.Error(err))
		}
	}
	return DeliveryResult{Success: true, ID: payload.ID}
}

// NotifyBatch tüm bildirimleri eş zamanlı dener; tek tek hatalar kardeş
// gönderimleri durdurmaz. Sonuçlar girdi sırasıyla döner.
func (s *NotificationDispatcher) NotifyBatch(ctx context.Context, kind NotificationKind, payloads []NotificationPayload) []DeliveryResult {
	results := make([]DeliveryResult, len(payloads))
	var wg sync.WaitGroup
	for i := range payloads {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Notify(ctx, kind, payloads[i])
		}(i)
	}
	wg.Wait()

	success := 0
	for _, r := range results {
		if r.Success {
			success++
		}
	}
	configslog.SLog.Infof("Bildirim grubu tamamlandı: tür=%s toplam=%d başarılı=%d", kind, len(payloads), success)
	return results
}

func (s *NotificationDispatcher) markFailed(ctx context.Context, audit *models.SentEmail, errMsg string) {
	if audit.ID == 0 {
		return
	}
	if err := s.sentRepo.MarkFailed(ctx, audit.ID, errMsg); err != nil {
		configslog.Log.Error("Notify: başarısızlık kaydı güncellenemedi", zap.Uint("id", audit.ID), zap.Error(err))
	}
}

// composeMessage şablon ailesine göre konu ve gövdeyi üretir.
func composeMessage(kind NotificationKind, p NotificationPayload) (string, string, error) {
	name := p.Name
	if name == "" {
		name = UnknownName
	}

	switch kind {
	case KindAttendeeApproval:
		return fmt.Sprintf("Katılımcı başvurunuz onaylandı: %s", p.EventTitle),
			approvalBody(name, p.EventTitle, "katılımcı"), nil
	case KindVolunteerApproval:
		return fmt.Sprintf("Gönüllü başvurunuz onaylandı: %s", p.EventTitle),
			approvalBody(name, p.EventTitle, "gönüllü"), nil
	case KindSpeakerApproval:
		return fmt.Sprintf("Konuşmacı başvurunuz onaylandı: %s", p.EventTitle),
			approvalBody(name, p.EventTitle, "konuşmacı"), nil
	case KindAttendeeRejection:
		return fmt.Sprintf("Katılımcı başvurunuz hakkında: %s", p.EventTitle),
			rejectionBody(name, p.EventTitle, "katılımcı", p.AdditionalInfo), nil
	case KindVolunteerRejection:
		return fmt.Sprintf("Gönüllü başvurunuz hakkında: %s", p.EventTitle),
			rejectionBody(name, p.EventTitle, "gönüllü", p.AdditionalInfo), nil
	case KindSpeakerRejection:
		return fmt.Sprintf("Konuşmacı başvurunuz hakkında: %s", p.EventTitle),
			rejectionBody(name, p.EventTitle, "konuşmacı", p.AdditionalInfo), nil
	case KindTicket:
		return fmt.Sprintf("Biletiniz hazır: %s", p.EventTitle),
			fmt.Sprintf("Merhaba %s,\n\n%s etkinliği için biletiniz oluşturuldu. Giriş sırasında bu e-postadaki bilgiler yeterlidir.\n\nİyi eğlenceler!", name, p.EventTitle), nil
	case KindReminder:
		return fmt.Sprintf("Hatırlatma: %s yaklaşıyor", p.EventTitle),
			fmt.Sprintf("Merhaba %s,\n\n%s etkinliği yaklaşıyor. Sizi aramızda görmekten mutluluk duyarız.", name, p.EventTitle), nil
	case KindCustom:
		if p.Subject == "" {
			return "", "", fmt.Errorf("%w: custom bildirimde konu zorunlu", ErrUnknownNotificationKind)
		}
		return p.Subject, p.Body, nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnknownNotificationKind, kind)
	}
}

func approvalBody(name, eventTitle, role string) string {
	return fmt.Sprintf("Merhaba %s,\n\n%s etkinliği için %s başvurunuz onaylandı. Etkinlik günü görüşmek üzere!",
		name, eventTitle, role)
}

func rejectionBody(name, eventTitle, role, additionalInfo string) string {
	body := fmt.Sprintf("Merhaba %s,\n\nMaalesef %s etkinliği için %s başvurunuz bu sefer onaylanmadı.",
		name, eventTitle, role)
	if additionalInfo != "" {
		body += "\n\nAçıklama: " + additionalInfo
	}
	body += "\n\nİlginiz için teşekkür ederiz."
	return body
}

var _ INotificationDispatcher = (*NotificationDispatcher)(nil)
