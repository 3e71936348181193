package model

import (
	"time"

	"github.com/google/uuid"

	userModel "library_backend/internals/features/users/user/model"
)

// UserProfileModel: one-to-one dengan users (uq_user_profiles_user).
type UserProfileModel struct {
	UserProfileID        uint      `gorm:"column:user_profile_id;primaryKey;autoIncrement" json:"user_profile_id"`
	UserProfileUserID    uuid.UUID `gorm:"column:user_profile_user_id;type:char(36);not null;uniqueIndex:uq_user_profiles_user" json:"user_profile_user_id"`
	UserProfilePhone     string    `gorm:"column:user_profile_phone;type:varchar(20)" json:"user_profile_phone"`
	UserProfilePicture   string    `gorm:"column:user_profile_picture;type:varchar(500)" json:"user_profile_picture"`
	UserProfileCreatedAt time.Time `gorm:"column:user_profile_created_at;autoCreateTime" json:"user_profile_created_at"`
	UserProfileUpdatedAt time.Time `gorm:"column:user_profile_updated_at;autoUpdateTime" json:"user_profile_updated_at"`

	User *userModel.UserModel `gorm:"foreignKey:UserProfileUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (UserProfileModel) TableName() string {
	return "user_profiles"
}
