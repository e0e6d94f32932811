package models

import "time"

// ReviewStatus değerlendirme moderasyon durumları (başvurularla aynı sözlük).
type ReviewStatus = SubmissionStatus

// Review bir kullanıcının etkinlik değerlendirmesi.
// (event_id, user_id) benzersizdir; organizatör tek bir yanıt yazabilir.
type Review struct {
	BaseModel
	EventID uint  `gorm:"not null;index:idx_review_event_user,unique" json:"event_id"`
	Event   Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID  uint  `gorm:"not null;index:idx_review_event_user,unique" json:"user_id"`
	User    User  `gorm:"foreignKey:UserID" json:"-"`

	Rating  int    `gorm:"type:integer;not null" json:"rating"` // 1-5
	Comment string `gorm:"type:text" json:"comment"`

	Status ReviewStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	Reply     string     `gorm:"type:text" json:"reply"`
	RepliedAt *time.Time `json:"replied_at"`
	RepliedBy *uint      `json:"replied_by"`
}
