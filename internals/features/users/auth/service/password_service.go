package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authHelper "library_backend/internals/features/users/auth/helper"
	userModel "library_backend/internals/features/users/user/model"
)

// SetPassword meng-hash dan menyimpan password baru (edit profil, create-admin).
func SetPassword(ctx context.Context, db *gorm.DB, userID uuid.UUID, newPassword string) error {
	hash, err := authHelper.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res := db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
