package model

import (
	"time"

	"github.com/google/uuid"

	userModel "library_backend/internals/features/users/user/model"
)

// VisitLogModel: append-only, tidak pernah di-update.
type VisitLogModel struct {
	VisitLogID        uint       `gorm:"column:visit_log_id;primaryKey;autoIncrement" json:"visit_log_id"`
	VisitLogPath      string     `gorm:"column:visit_log_path;type:varchar(500);not null" json:"visit_log_path"`
	VisitLogMethod    string     `gorm:"column:visit_log_method;type:varchar(10);not null" json:"visit_log_method"`
	VisitLogIPAddress *string    `gorm:"column:visit_log_ip_address;type:varchar(45)" json:"visit_log_ip_address,omitempty"`
	VisitLogUserID    *uuid.UUID `gorm:"column:visit_log_user_id;type:char(36);index:idx_visit_logs_user" json:"visit_log_user_id,omitempty"`
	VisitLogTimestamp time.Time  `gorm:"column:visit_log_timestamp;not null;index:idx_visit_logs_timestamp" json:"visit_log_timestamp"`

	User *userModel.UserModel `gorm:"foreignKey:VisitLogUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (VisitLogModel) TableName() string {
	return "visit_logs"
}
