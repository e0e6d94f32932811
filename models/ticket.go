package models

import "time"

// Ticket başvuru kayıtlarına paralel ikinci katılım kaydı (bilet yolu).
// Raporlamada FormSubmission ile AttendanceRecord altında birleştirilir.
type Ticket struct {
	BaseModel
	EventID uint  `gorm:"not null;index;index:idx_ticket_event_user,unique" json:"event_id"`
	Event   Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID  uint  `gorm:"not null;index;index:idx_ticket_event_user,unique" json:"user_id"`
	User    User  `gorm:"foreignKey:UserID" json:"-"`

	Code        string `gorm:"type:varchar(36);uniqueIndex;not null" json:"code"` // uuid
	HolderName  string `gorm:"type:varchar(150)" json:"holder_name"`
	HolderEmail string `gorm:"type:varchar(150)" json:"holder_email"`

	IsCheckedIn     bool       `gorm:"default:false;index" json:"is_checked_in"`
	CheckInCount    int        `gorm:"type:integer;default:0" json:"check_in_count"`
	CheckedInAt     *time.Time `json:"checked_in_at"`
	LastCheckedInAt *time.Time `json:"last_checked_in_at"`
	CheckedInBy     *uint      `json:"checked_in_by"`
}
