// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "library_backend/internals/features/users/auth/model"
	userModel "library_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmailOrUsername(ctx context.Context, db *gorm.DB, identifier string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).
		Where("user_name = ? OR LOWER(email) = LOWER(?)", identifier, identifier).
		// match username didahulukan daripada match email
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN user_name = ? THEN 0 ELSE 1 END",
			Vars:               []any{identifier},
			WithoutParentheses: true,
		}}).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func IsUsernameTaken(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("user_name = ?", username).
		Count(&n).Error
	return n > 0, err
}

// IsEmailTaken: case-insensitive; excludeID dipakai saat edit profil.
func IsEmailTaken(ctx context.Context, db *gorm.DB, email string, excludeID uuid.UUID) (bool, error) {
	var n int64
	q := db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("LOWER(email) = LOWER(?)", email)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func TouchLastLogin(ctx context.Context, db *gorm.DB, userID uuid.UUID, at time.Time) error {
	return db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		UpdateColumn("last_login_at", at).Error
}

/* ====================== REVOKED SESSIONS ====================== */

// RevokeSession idempotent: jti yang sama diabaikan.
func RevokeSession(ctx context.Context, db *gorm.DB, jti string, userID uuid.UUID, expiresAt time.Time) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "jti"}}, DoNothing: true}).
		Create(&authModel.RevokedSessionModel{
			JTI:       jti,
			UserID:    userID,
			ExpiresAt: expiresAt.UTC(),
		}).Error
}

func IsSessionRevoked(ctx context.Context, db *gorm.DB, jti string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&authModel.RevokedSessionModel{}).
		Where("jti = ?", jti).
		Count(&n).Error
	return n > 0, err
}

// CleanupExpiredSessions: token yang sudah lewat exp tidak perlu diingat lagi.
func CleanupExpiredSessions(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&authModel.RevokedSessionModel{})
	return res.RowsAffected, res.Error
}
