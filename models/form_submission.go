package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubmissionStatus başvuru moderasyon durumları.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Valid bilinen bir durum mu?
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	}
	return false
}

// FormSubmission bir etkinlik formuna yapılan başvuru.
// Name/Email cevap haritasından çıkarılan en iyi tahmindir
// (bulunamazsa "Unknown" / "No email").
// Aynı (etkinlik, kullanıcı/e-posta, form türü) için reddedilmemiş
// en fazla bir başvuru bulunabilir; migrasyon kısmi unique index oluşturur.
type FormSubmission struct {
	BaseModel
	EventID  uint     `gorm:"index;not null;index:idx_submission_dedup" json:"event_id"`
	Event    Event    `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FormType FormType `gorm:"type:varchar(20);not null;index;index:idx_submission_dedup" json:"form_type"`

	UserID *uint  `gorm:"index" json:"user_id"`
	Name   string `gorm:"type:varchar(150)" json:"name"`
	Email  string `gorm:"type:varchar(150);index" json:"email"`

	Answers datatypes.JSONMap `gorm:"type:jsonb" json:"answers"`

	Status SubmissionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	// Check-in alanları. CheckInCount tekrar girişlerde artar,
	// IsCheckedIn ilk girişten sonra true kalır.
	IsCheckedIn     bool       `gorm:"default:false;index" json:"is_checked_in"`
	CheckInCount    int        `gorm:"type:integer;default:0" json:"check_in_count"`
	CheckedInAt     *time.Time `json:"checked_in_at"`
	LastCheckedInAt *time.Time `json:"last_checked_in_at"`
	CheckedInBy     *uint      `json:"checked_in_by"`
}
