package dto

import (
	"time"

	authService "library_backend/internals/features/users/auth/service"
	userModel "library_backend/internals/features/users/user/model"
)

// ============================
// Request
// ============================

// LoginRequest: username boleh diisi username atau email.
type LoginRequest struct {
	Username   string `json:"username" form:"username" validate:"required,max=254"`
	Password   string `json:"password" form:"password" validate:"required"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type RegisterRequest struct {
	FullName        string `json:"full_name" form:"full_name" validate:"required,max=300"`
	Username        string `json:"username" form:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" form:"email" validate:"required,email,max=254"`
	Phone           string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Password        string `json:"password" form:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

func (r RegisterRequest) ToInput() authService.RegisterInput {
	return authService.RegisterInput{
		FullName:        r.FullName,
		UserName:        r.Username,
		Email:           r.Email,
		Phone:           r.Phone,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

// ============================
// Response
// ============================

type UserResponse struct {
	ID        string `json:"id"`
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
}

func ToUserResponse(u userModel.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		UserName:  u.UserName,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Role:      u.Role,
	}
}

type SessionResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	RememberMe  bool         `json:"remember_me"`
	User        UserResponse `json:"user"`
}

func ToSessionResponse(s *authService.Session) SessionResponse {
	return SessionResponse{
		AccessToken: s.Token,
		ExpiresAt:   s.ExpiresAt,
		RememberMe:  s.Remember,
		User:        ToUserResponse(s.User),
	}
}
