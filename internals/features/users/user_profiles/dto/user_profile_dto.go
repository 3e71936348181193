package dto

import (
	"time"

	profileService "library_backend/internals/features/users/user_profiles/service"
)

// UpdateUserProfileRequest: field kosong (nil) tidak diubah.
// Multipart: foto di field file "profile_picture".
type UpdateUserProfileRequest struct {
	FullName           *string `json:"full_name" form:"full_name" validate:"omitempty,max=300"`
	Email              *string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	Phone              *string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	NewPassword        string  `json:"new_password" form:"new_password"`
	ConfirmNewPassword string  `json:"confirm_new_password" form:"confirm_new_password"`
}

func (r UpdateUserProfileRequest) ToInput() profileService.UpdateInput {
	return profileService.UpdateInput{
		FullName:           r.FullName,
		Email:              r.Email,
		Phone:              r.Phone,
		NewPassword:        r.NewPassword,
		ConfirmNewPassword: r.ConfirmNewPassword,
	}
}

type UserProfileResponse struct {
	UserID                       string     `json:"user_id"`
	UserName                     string     `json:"user_name"`
	Email                        string     `json:"email"`
	FirstName                    string     `json:"first_name"`
	LastName                     string     `json:"last_name"`
	FullName                     string     `json:"full_name"`
	Role                         string     `json:"role"`
	UserProfilePhone             string     `json:"user_profile_phone"`
	UserProfilePicture           string     `json:"user_profile_picture"`
	UserProfileCurrentlyBorrowed int64      `json:"currently_borrowed"`
	UserProfileTotalBorrowed     int64      `json:"total_borrowed"`
	LastLoginAt                  *time.Time `json:"last_login_at,omitempty"`
	JoinedAt                     time.Time  `json:"joined_at"`
}

func ToUserProfileResponse(p *profileService.Profile) UserProfileResponse {
	return UserProfileResponse{
		UserID:                       p.User.ID.String(),
		UserName:                     p.User.UserName,
		Email:                        p.User.Email,
		FirstName:                    p.User.FirstName,
		LastName:                     p.User.LastName,
		FullName:                     p.User.FullName(),
		Role:                         p.User.Role,
		UserProfilePhone:             p.Profile.UserProfilePhone,
		UserProfilePicture:           p.Profile.UserProfilePicture,
		UserProfileCurrentlyBorrowed: p.CurrentlyBorrowed,
		UserProfileTotalBorrowed:     p.TotalBorrowed,
		LastLoginAt:                  p.User.LastLoginAt,
		JoinedAt:                     p.User.CreatedAt,
	}
}
