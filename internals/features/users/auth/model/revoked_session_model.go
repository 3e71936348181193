package model

import (
	"time"

	"github.com/google/uuid"
)

// RevokedSessionModel menyimpan jti token yang sudah logout.
// Baris yang expires_at-nya lewat dibersihkan scheduler.
type RevokedSessionModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"column:jti;type:varchar(64);not null;uniqueIndex:uq_revoked_sessions_jti" json:"jti"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null;index:idx_revoked_sessions_expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (RevokedSessionModel) TableName() string {
	return "revoked_sessions"
}
