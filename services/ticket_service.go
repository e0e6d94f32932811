package services

import (
	"context"
	"errors"
	"fmt"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TicketServiceError bilet servis hataları.
type TicketServiceError string

func (e TicketServiceError) Error() string { return string(e) }

const (
	ErrTicketNotFound    TicketServiceError = "bilet bulunamadı"
	ErrTicketExists      TicketServiceError = "bu etkinlik için zaten bir biletiniz var"
	ErrTicketIssueFailed TicketServiceError = "bilet oluşturulamadı"
)

// ITicketService bilet işlemleri için arayüz.
type ITicketService interface {
	IssueTicket(ctx context.Context, eventID uint, holder SubmitterIdentity, caller Caller) (*models.Ticket, error)
	GetTicketByCode(ctx context.Context, code string) (*models.Ticket, error)
	GetTicketsForEvent(ctx context.Context, eventID uint, caller Caller) ([]models.Ticket, error)
}

// TicketService ITicketService arayüzünü uygular.
type TicketService struct {
	ticketRepo repositories.ITicketRepository
	eventRepo  repositories.IEventRepository
	notifier   INotificationDispatcher
}

// NewTicketService üretim kurulumunda global bağlantıyı kullanır.
func NewTicketService() ITicketService {
	return NewTicketServiceWithDB(configsdatabase.GetDB(), NewNotificationDispatcher())
}

// NewTicketServiceWithDB bağımlılıkları dışarıdan alır (test ve DI).
func NewTicketServiceWithDB(db *gorm.DB, notifier INotificationDispatcher) ITicketService {
	return &TicketService{
		ticketRepo: repositories.NewTicketRepositoryWithDB(db),
		eventRepo:  repositories.NewEventRepositoryWithDB(db),
		notifier:   notifier,
	}
}

// IssueTicket oturum açmış kullanıcıya uuid kodlu bilet keser.
// (etkinlik, kullanıcı) başına tek bilet kuralı hem sorgu hem unique index ile
// korunur. Bilet bildirimi en-iyi-çaba ile gönderilir.
func (s *TicketService) IssueTicket(ctx context.Context, eventID uint, holder SubmitterIdentity, caller Caller) (*models.Ticket, error) {
	if caller.IsAnonymous() {
		return nil, ErrUnauthorized
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !event.IsEnabled {
		return nil, ErrEventNotFound
	}

	if _, err := s.ticketRepo.FindByEventAndUser(ctx, eventID, caller.UserID); err == nil {
		return nil, ErrTicketExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	holderName := holder.Name
	holderEmail := holder.Email
	if holderEmail == "" {
		holderEmail = caller.Email
	}

	ticket := &models.Ticket{
		EventID:     eventID,
		UserID:      caller.UserID,
		Code:        uuid.NewString(),
		HolderName:  holderName,
		HolderEmail: holderEmail,
	}
	if err := s.ticketRepo.Create(models.ContextWithUserID(ctx, caller.UserID), ticket); err != nil {
		configslog.Log.Error("IssueTicket: kayıt başarısız", zap.Uint("eventID", eventID), zap.Uint("userID", caller.UserID), zap.Error(err))
		return nil, ErrTicketIssueFailed
	}

	if holderEmail != "" {
		result := s.notifier.Notify(ctx, KindTicket, NotificationPayload{
			ID:         fmt.Sprintf("ticket-%d", ticket.ID),
			To:         holderEmail,
			Name:       holderName,
			EventTitle: event.Title,
			EventID:    &event.ID,
		})
		if !result.Success {
			configslog.Log.Warn("IssueTicket: bilet bildirimi gönderilemedi",
				zap.Uint("ticketID", ticket.ID), zap.String("error", result.Error))
		}
	}

	configslog.SLog.Infof("Bilet kesildi: etkinlik=%d kullanıcı=%d kod=%s", eventID, caller.UserID, ticket.Code)
	return ticket, nil
}

func (s *TicketService) GetTicketByCode(ctx context.Context, code string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) GetTicketsForEvent(ctx context.Context, eventID uint, caller Caller) ([]models.Ticket, error) {
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
	return s.ticketRepo.FindAllByEvent(ctx, eventID)
}

var _ ITicketService = (*TicketService)(nil)
