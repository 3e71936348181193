package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	UserName    string     `gorm:"size:150;not null;uniqueIndex:uq_users_user_name" json:"user_name"`
	Email       string     `gorm:"size:254;not null;uniqueIndex:uq_users_email" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	FirstName   string     `gorm:"size:150" json:"first_name"`
	LastName    string     `gorm:"size:150" json:"last_name"`
	Role        string     `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// id dibuat di aplikasi supaya sama di postgres/mysql/sqlite
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = "user"
	}
	return nil
}

// FullName: "first last", kosong kalau dua-duanya kosong.
func (u UserModel) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName: nama lengkap, fallback ke username.
func (u UserModel) DisplayName() string {
	if n := u.FullName(); n != "" {
		return n
	}
	return u.UserName
}

// SplitFullName memecah di spasi pertama: "Ada King Lovelace" → ("Ada", "King Lovelace").
func SplitFullName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	first, last, _ = strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}
