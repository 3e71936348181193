package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"library_backend/internals/constants"
	borrowingService "library_backend/internals/features/circulation/borrowings/service"
	authRepo "library_backend/internals/features/users/auth/repository"
	authService "library_backend/internals/features/users/auth/service"
	userModel "library_backend/internals/features/users/user/model"
	profileModel "library_backend/internals/features/users/user_profiles/model"
	helper "library_backend/internals/helpers"
)

// Profile: user + profil + hitungan pinjaman.
type Profile struct {
	User              userModel.UserModel
	Profile           profileModel.UserProfileModel
	CurrentlyBorrowed int64
	TotalBorrowed     int64
}

// UpdateInput: nil = tidak diubah.
type UpdateInput struct {
	FullName           *string
	Email              *string
	Phone              *string
	PictureURL         *string
	NewPassword        string
	ConfirmNewPassword string
}

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// GetOrCreate: profil dibuat kosong kalau belum ada (user lama / create-admin).
func (s *Service) GetOrCreate(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	db := s.DB.WithContext(ctx)

	var user userModel.UserModel
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}

	profile, err := getOrCreateProfile(db, userID)
	if err != nil {
		return nil, err
	}

	counts, err := borrowingService.New(s.DB).CountsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		User:              user,
		Profile:           *profile,
		CurrentlyBorrowed: counts.Current,
		TotalBorrowed:     counts.Total,
	}, nil
}

func getOrCreateProfile(db *gorm.DB, userID uuid.UUID) (*profileModel.UserProfileModel, error) {
	p := profileModel.UserProfileModel{UserProfileUserID: userID}
	// insert kalau belum ada; unique user_id menahan duplikat saat balapan
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_profile_user_id"}},
		DoNothing: true,
	}).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	var out profileModel.UserProfileModel
	if err := db.Where("user_profile_user_id = ?", userID).First(&out).Error; err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &out, nil
}

// Update: partial update nama/email/telepon/foto, ganti password opsional.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, in UpdateInput) (*Profile, error) {
	if in.NewPassword != "" {
		if len(in.NewPassword) < constants.MinPasswordLength {
			return nil, authService.ErrPasswordTooShort
		}
		if in.NewPassword != in.ConfirmNewPassword {
			return nil, authService.ErrPasswordMismatch
		}
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		in.Email = &email
		taken, err := authRepo.IsEmailTaken(ctx, s.DB, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, authService.ErrEmailTaken
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userUpdates := map[string]any{}
		if in.FullName != nil {
			first, last := userModel.SplitFullName(*in.FullName)
			userUpdates["first_name"] = first
			userUpdates["last_name"] = last
		}
		if in.Email != nil {
			userUpdates["email"] = *in.Email
		}
		if len(userUpdates) > 0 {
			if err := tx.Model(&userModel.UserModel{}).Where("id = ?", userID).Updates(userUpdates).Error; err != nil {
				return err
			}
		}
		if in.NewPassword != "" {
			if err := authService.SetPassword(ctx, tx, userID, in.NewPassword); err != nil {
				return err
			}
		}

		profile, err := getOrCreateProfile(tx, userID)
		if err != nil {
			return err
		}
		profileUpdates := map[string]any{}
		if in.Phone != nil {
			profileUpdates["user_profile_phone"] = strings.TrimSpace(*in.Phone)
		}
		if in.PictureURL != nil {
			profileUpdates["user_profile_picture"] = *in.PictureURL
		}
		if len(profileUpdates) > 0 {
			if err := tx.Model(profile).Updates(profileUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, authService.ErrEmailTaken
		}
		return nil, err
	}
	return s.GetOrCreate(ctx, userID)
}
