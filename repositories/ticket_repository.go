package repositories

import (
	"context"
	"errors"
	"time"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ITicketRepository bilet veritabanı işlemleri için arayüz.
type ITicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	FindByID(ctx context.Context, id uint) (*models.Ticket, error)
	FindByCode(ctx context.Context, code string) (*models.Ticket, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.Ticket, error)
	FindAllByEvent(ctx context.Context, eventID uint) ([]models.Ticket, error)
	IncrementCheckIn(ctx context.Context, id uint, operatorID uint) (*models.Ticket, error)
	FindRecentCheckIns(ctx context.Context, eventID uint, limit int) ([]models.Ticket, error)
}

type TicketRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Ticket]
}

// NewTicketRepository global bağlantı ile repository oluşturur.
func NewTicketRepository() ITicketRepository {
	return NewTicketRepositoryWithDB(configsdatabase.GetDB())
}

// NewTicketRepositoryWithDB verilen bağlantı (veya tx) ile repository oluşturur.
func NewTicketRepositoryWithDB(db *gorm.DB) ITicketRepository {
	base := NewBaseRepository[models.Ticket](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "check_in_count", "last_checked_in_at"})
	return &TicketRepository{db: db, base: base}
}

func (r *TicketRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	if ticket == nil || ticket.EventID == 0 || ticket.UserID == 0 || ticket.Code == "" {
		return errors.New("geçersiz bilet kaydı")
	}
	return r.getDB(ctx).Create(ticket).Error
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Ticket ID")
	}
	var ticket models.Ticket
	err := r.getDB(ctx).Preload("Event").First(&ticket, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("TicketRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepository) FindByCode(ctx context.Context, code string) (*models.Ticket, error) {
	if code == "" {
		return nil, ErrNotFound
	}
	var ticket models.Ticket
	err := r.getDB(ctx).Preload("Event").Where("code = ?", code).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("TicketRepository.FindByCode: DB error", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.getDB(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("TicketRepository.FindByEventAndUser: DB error", zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepository) FindAllByEvent(ctx context.Context, eventID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.getDB(ctx).Where("event_id = ?", eventID).Find(&tickets).Error
	if err != nil {
		configslog.Log.Error("TicketRepository.FindAllByEvent: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return tickets, nil
}

// IncrementCheckIn başvurulardaki ile aynı atomik artırma sözleşmesi.
func (r *TicketRepository) IncrementCheckIn(ctx context.Context, id uint, operatorID uint) (*models.Ticket, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Ticket ID")
	}
	now := time.Now().UTC()
	result := r.getDB(ctx).Model(&models.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_checked_in":      true,
			"check_in_count":     gorm.Expr("check_in_count + 1"),
			"checked_in_at":      gorm.Expr("COALESCE(checked_in_at, ?)", now),
			"last_checked_in_at": now,
			"checked_in_by":      operatorID,
		})
	if result.Error != nil {
		configslog.Log.Error("TicketRepository.IncrementCheckIn: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *TicketRepository) FindRecentCheckIns(ctx context.Context, eventID uint, limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.getDB(ctx).
		Where("event_id = ? AND is_checked_in = ?", eventID, true).
		Order("last_checked_in_at DESC").
		Limit(limit).
		Find(&tickets).Error
	if err != nil {
		configslog.Log.Error("TicketRepository.FindRecentCheckIns: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return tickets, nil
}

var _ ITicketRepository = (*TicketRepository)(nil)
