package models

import "time"

// FormType bir etkinliğin kayıt formu türleri.
type FormType string

const (
	FormTypeAttendee  FormType = "attendee"
	FormTypeVolunteer FormType = "volunteer"
	FormTypeSpeaker   FormType = "speaker"
)

// FormTypes migrasyon ve varsayılan form oluşturma sırası.
var FormTypes = []FormType{FormTypeAttendee, FormTypeVolunteer, FormTypeSpeaker}

// Valid bilinen bir form türü mü?
func (t FormType) Valid() bool {
	switch t {
	case FormTypeAttendee, FormTypeVolunteer, FormTypeSpeaker:
		return true
	}
	return false
}

// FormStatus form yayın durumu.
type FormStatus string

const (
	FormStatusDraft     FormStatus = "draft"
	FormStatusPublished FormStatus = "published"
)

// Event organizatöre ait bir etkinlik.
// Key public sayfa erişimi için üretilen uuid anahtardır.
type Event struct {
	BaseModel
	OrganizerID  uint       `gorm:"index;not null" json:"organizer_id"`
	Organizer    User       `gorm:"foreignKey:OrganizerID" json:"-"`
	Key          string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"key"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	LocationText string     `gorm:"type:varchar(255)" json:"location_text"`
	StartsAt     time.Time  `gorm:"index" json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	Capacity     int        `gorm:"type:integer;default:0" json:"capacity"` // 0 = sınırsız
	IsEnabled    bool       `gorm:"default:true;index" json:"is_enabled"`

	Forms []EventForm `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"forms"`
}

// FormOfType etkinliğin ilgili türdeki formunu döndürür (yoksa nil).
func (e *Event) FormOfType(t FormType) *EventForm {
	for i := range e.Forms {
		if e.Forms[i].FormType == t {
			return &e.Forms[i]
		}
	}
	return nil
}

// EventForm bir etkinliğin tek bir form türüne ait yayın durumu ve soruları.
// (event_id, form_type) benzersizdir.
type EventForm struct {
	BaseModel
	EventID  uint       `gorm:"not null;index:idx_event_form_type,unique" json:"event_id"`
	FormType FormType   `gorm:"type:varchar(20);not null;index:idx_event_form_type,unique" json:"form_type"`
	Status   FormStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	Questions []EventQuestion `gorm:"foreignKey:EventFormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"questions"`
}

// EventQuestion organizatörün forma eklediği özel soru.
type EventQuestion struct {
	BaseModel
	EventFormID uint   `gorm:"index;not null" json:"event_form_id"`
	FieldKey    string `gorm:"type:varchar(100);not null" json:"field_key"` // Cevap haritasındaki anahtar
	Label       string `gorm:"type:varchar(255);not null" json:"label"`
	InputType   string `gorm:"type:varchar(30);default:'text'" json:"input_type"`
	IsRequired  bool   `gorm:"default:false" json:"is_required"`
	SortOrder   int    `gorm:"type:integer;default:0" json:"sort_order"`
}
