package models

// Role kullanıcı rolleri.
type Role string

const (
	RoleUser       Role = "user"          // Normal katılımcı
	RolePlanner    Role = "event-planner" // Etkinlik organizatörü
	RoleSuperAdmin Role = "super-admin"   // Sistem yöneticisi
)

// User platform kullanıcısı.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(150);not null" json:"name"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	IsActive     bool   `gorm:"default:true;index" json:"is_active"`
}

// IsSuperAdmin sistem yöneticisi mi?
func (u *User) IsSuperAdmin() bool { return u.Role == RoleSuperAdmin }

// IsPlanner organizatör mü?
func (u *User) IsPlanner() bool { return u.Role == RolePlanner }
