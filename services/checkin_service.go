package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/repositories"

	"gorm.io/gorm"
)

// CheckInServiceError check-in servis hataları.
type CheckInServiceError string

func (e CheckInServiceError) Error() string { return string(e) }

const (
	ErrAttendanceNotFound      CheckInServiceError = "katılım kaydı bulunamadı"
	ErrSubmissionNotApproved   CheckInServiceError = "onaylanmamış başvuru için check-in yapılamaz"
	ErrUnknownAttendanceOrigin CheckInServiceError = "geçersiz katılım kaydı türü"
)

// Origin katılım kaydının kaynağı: bilet veya form başvurusu.
type Origin string

const (
	OriginSubmission Origin = "submission"
	OriginTicket     Origin = "ticket"
)

// CheckInTarget check-in yapılacak kaydın adresi.
type CheckInTarget struct {
	Origin Origin `json:"origin"`
	ID     uint   `json:"id"`
}

// CheckInResult tek check-in çağrısının sonucu. IsDuplicate, artırma sonrası
// sayaç 1'den büyükse true olur; operatör ekranında uyarı göstermek içindir.
type CheckInResult struct {
	IsCheckedIn  bool `json:"isCheckedIn"`
	CheckInCount int  `json:"checkInCount"`
	IsDuplicate  bool `json:"isDuplicate"`
}

// AttendanceRecord bilet ve başvuru kayıtlarını tek soyutlamada birleştirir;
// istatistik ve aktivite akışı tek kod yolundan hesaplanır.
type AttendanceRecord struct {
	Origin          Origin
	RecordID        uint
	UserID          *uint
	Name            string
	Email           string
	IsCheckedIn     bool
	CheckInCount    int
	CheckedInAt     *time.Time
	LastCheckedInAt *time.Time
}

// Stats etkinlik bazında katılım özeti.
type Stats struct {
	Total      int `json:"total"`
	CheckedIn  int `json:"checkedIn"`
	Remaining  int `json:"remaining"`
	Percentage int `json:"percentage"`
}

// CheckInEvent aktivite akışındaki tek satır.
type CheckInEvent struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Origin      Origin    `json:"origin"`
	CheckedInAt time.Time `json:"checkedInAt"`
}

const defaultActivityLimit = 10

// ICheckInService check-in işlemleri için arayüz.
type ICheckInService interface {
	CheckIn(ctx context.Context, target CheckInTarget, caller Caller, method string) (*CheckInResult, error)
	GetStats(ctx context.Context, eventID uint, caller Caller) (*Stats, error)
	RecentActivity(ctx context.Context, eventID uint, limit int, caller Caller) ([]CheckInEvent, error)
}

// CheckInService ICheckInService arayüzünü uygular.
type CheckInService struct {
	submissionRepo repositories.ISubmissionRepository
	ticketRepo     repositories.ITicketRepository
	eventRepo      repositories.IEventRepository
}

// NewCheckInService üretim kurulumunda global bağlantıyı kullanır.
func NewCheckInService() ICheckInService {
	return NewCheckInServiceWithDB(configsdatabase.GetDB())
}

// NewCheckInServiceWithDB bağlantıyı dışarıdan alır (test ve DI).
func NewCheckInServiceWithDB(db *gorm.DB) ICheckInService {
	return &CheckInService{
		submissionRepo: repositories.NewSubmissionRepositoryWithDB(db),
		ticketRepo:     repositories.NewTicketRepositoryWithDB(db),
		eventRepo:      repositories.NewEventRepositoryWithDB(db),
	}
}

// CheckIn kaydı atomik olarak işaretler. İlk çağrı not-checked-in ->
// checked-in geçişidir; sonraki çağrılar tekrar giriş (ör. çoklu oturum)
// sayılır, sayaç artar ama durum değişmez.
func (s *CheckInService) CheckIn(ctx context.Context, target CheckInTarget, caller Caller, method string) (*CheckInResult, error) {
	switch target.Origin {
	case OriginSubmission:
		return s.checkInSubmission(ctx, target.ID, caller, method)
	case OriginTicket:
		return s.checkInTicket(ctx, target.ID, caller, method)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAttendanceOrigin, target.Origin)
	}
}

func (s *CheckInService) checkInSubmission(ctx context.Context, id uint, caller Caller, method string) (*CheckInResult, error) {
	submission, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}

	event, err := s.eventRepo.FindByID(ctx, submission.EventID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(caller, event, ActionCheckIn); err != nil {
		return nil, err
	}
	if submission.Status != models.SubmissionStatusApproved {
		return nil, ErrSubmissionNotApproved
	}

	updated, err := s.submissionRepo.IncrementCheckIn(ctx, id, caller.UserID)
	if err != nil {
		return nil, err
	}

	configslog.SLog.Infof("Check-in: kaynak=submission kayıt=%d etkinlik=%d yöntem=%s sayaç=%d",
		id, event.ID, method, updated.CheckInCount)
	return &CheckInResult{
		IsCheckedIn:  updated.IsCheckedIn,
		CheckInCount: updated.CheckInCount,
		IsDuplicate:  updated.CheckInCount > 1,
	}, nil
}

func (s *CheckInService) checkInTicket(ctx context.Context, id uint, caller Caller, method string) (*CheckInResult, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}

	event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(caller, event, ActionCheckIn); err != nil {
		return nil, err
	}

	updated, err := s.ticketRepo.IncrementCheckIn(ctx, id, caller.UserID)
	if err != nil {
		return nil, err
	}

	configslog.SLog.Infof("Check-in: kaynak=ticket kayıt=%d etkinlik=%d yöntem=%s sayaç=%d",
		id, event.ID, method, updated.CheckInCount)
	return &CheckInResult{
		IsCheckedIn:  updated.IsCheckedIn,
		CheckInCount: updated.CheckInCount,
		IsDuplicate:  updated.CheckInCount > 1,
	}, nil
}

// GetStats onaylı katılımcı başvuruları ile biletlerin birleşimi üzerinden
// özet üretir. Aynı kişi iki kayıtla da görünüyorsa bir kez sayılır.
func (s *CheckInService) GetStats(ctx context.Context, eventID uint, caller Caller) (*Stats, error) {
	records, err := s.attendanceForEvent(ctx, eventID, caller)
	if err != nil {
		return nil, err
	}

	total := len(records)
	checkedIn := 0
	for _, rec := range records {
		if rec.IsCheckedIn {
			checkedIn++
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(checkedIn) / float64(total) * 100))
	}
	return &Stats{
		Total:      total,
		CheckedIn:  checkedIn,
		Remaining:  total - checkedIn,
		Percentage: percentage,
	}, nil
}

// RecentActivity son check-in'leri yeni olandan eskiye döndürür.
func (s *CheckInService) RecentActivity(ctx context.Context, eventID uint, limit int, caller Caller) ([]CheckInEvent, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	records, err := s.attendanceForEvent(ctx, eventID, caller)
	if err != nil {
		return nil, err
	}

	activity := make([]CheckInEvent, 0, limit)
	for _, rec := range records {
		if rec.LastCheckedInAt == nil {
			continue
		}
		activity = append(activity, CheckInEvent{
			Name:        displayName(rec.Name),
			Email:       displayEmail(rec.Email),
			Origin:      rec.Origin,
			CheckedInAt: *rec.LastCheckedInAt,
		})
	}
	sort.Slice(activity, func(i, j int) bool {
		return activity[i].CheckedInAt.After(activity[j].CheckedInAt)
	})
	if len(activity) > limit {
		activity = activity[:limit]
	}
	return activity, nil
}

// attendanceForEvent iki kayıt türünü AttendanceRecord altında birleştirir.
// Tekilleştirme anahtarı kullanıcı ID, yoksa küçük harfli e-posta adresidir;
// ikisi de yoksa kayıt kendi başına sayılır. Birleşen kayıtlarda check-in
// bilgisi iki kaynağın birleşimidir (biri girdiyse kişi girmiş sayılır).
func (s *CheckInService) attendanceForEvent(ctx context.Context, eventID uint, caller Caller) ([]AttendanceRecord, error) {
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

	submissions, err := s.submissionRepo.FindApprovedAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.ticketRepo.FindAllByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	byKey := map[string]int{}
	records := make([]AttendanceRecord, 0, len(submissions)+len(tickets))

	add := func(rec AttendanceRecord) {
		key := attendanceKey(rec)
		if key == "" {
			records = append(records, rec)
			return
		}
		if idx, ok := byKey[key]; ok {
			records[idx] = mergeAttendance(records[idx], rec)
			return
		}
		byKey[key] = len(records)
		records = append(records, rec)
	}

	for i := range submissions {
		sub := submissions[i]
		add(AttendanceRecord{
			Origin:          OriginSubmission,
			RecordID:        sub.ID,
			UserID:          sub.UserID,
			Name:            sub.Name,
			Email:           sub.Email,
			IsCheckedIn:     sub.IsCheckedIn,
			CheckInCount:    sub.CheckInCount,
			CheckedInAt:     sub.CheckedInAt,
			LastCheckedInAt: sub.LastCheckedInAt,
		})
	}
	for i := range tickets {
		t := tickets[i]
		userID := t.UserID
		add(AttendanceRecord{
			Origin:          OriginTicket,
			RecordID:        t.ID,
			UserID:          &userID,
			Name:            t.HolderName,
			Email:           t.HolderEmail,
			IsCheckedIn:     t.IsCheckedIn,
			CheckInCount:    t.CheckInCount,
			CheckedInAt:     t.CheckedInAt,
			LastCheckedInAt: t.LastCheckedInAt,
		})
	}
	return records, nil
}

func attendanceKey(rec AttendanceRecord) string {
	if rec.UserID != nil && *rec.UserID != 0 {
		return fmt.Sprintf("user:%d", *rec.UserID)
	}
	if rec.Email != "" && rec.Email != NoEmail {
		return "email:" + strings.ToLower(rec.Email)
	}
	return ""
}

// mergeAttendance aynı kişiye ait iki kaydı birleştirir; ilk görülen kayıt
// (başvurular önce eklenir) kimlik bilgisini belirler.
func mergeAttendance(a, b AttendanceRecord) AttendanceRecord {
	merged := a
	merged.IsCheckedIn = a.IsCheckedIn || b.IsCheckedIn
	merged.CheckInCount = a.CheckInCount + b.CheckInCount
	if merged.CheckedInAt == nil || (b.CheckedInAt != nil && b.CheckedInAt.Before(*merged.CheckedInAt)) {
		merged.CheckedInAt = b.CheckedInAt
	}
	if merged.LastCheckedInAt == nil || (b.LastCheckedInAt != nil && b.LastCheckedInAt.After(*merged.LastCheckedInAt)) {
		merged.LastCheckedInAt = b.LastCheckedInAt
	}
	if merged.Name == "" || merged.Name == UnknownName {
		merged.Name = b.Name
	}
	if merged.Email == "" || merged.Email == NoEmail {
		merged.Email = b.Email
	}
	return merged
}

func displayName(name string) string {
	if name == "" {
		return UnknownName
	}
	return name
}

func displayEmail(email string) string {
	if email == "" {
		return NoEmail
	}
	return email
}

var _ ICheckInService = (*CheckInService)(nil)
