package models

// EmailStatus gönderim denemesinin sonucu.
type EmailStatus string

const (
	EmailStatusPending EmailStatus = "pending"
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
)

// SentEmail giden her bildirim için tutulan denetim kaydı.
// Başarısız denemeler de hata mesajıyla birlikte saklanır.
type SentEmail struct {
	BaseModel
	Recipient string      `gorm:"type:varchar(150);not null;index" json:"recipient"`
	Subject   string      `gorm:"type:varchar(255);not null" json:"subject"`
	Body      string      `gorm:"type:text" json:"body"`
	Kind      string      `gorm:"type:varchar(50);index" json:"kind"`
	Status    EmailStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Error     string      `gorm:"type:text" json:"error"`

	EventID      *uint `gorm:"index" json:"event_id"`
	SubmissionID *uint `gorm:"index" json:"submission_id"`
}
