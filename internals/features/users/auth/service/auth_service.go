package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	"library_backend/internals/constants"
	authHelper "library_backend/internals/features/users/auth/helper"
	authRepo "library_backend/internals/features/users/auth/repository"
	userModel "library_backend/internals/features/users/user/model"
	userProfileModel "library_backend/internals/features/users/user_profiles/model"
	helper "library_backend/internals/helpers"
)

/* ==========================
   Errors
========================== */

var (
	ErrUsernameTaken      = errors.New("this username is already taken")
	ErrEmailTaken         = errors.New("this email is already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", constants.MinPasswordLength)
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrTokenExpired       = errors.New("session expired")
	ErrSessionRevoked     = errors.New("session has been logged out")
	ErrMissingSecret      = errors.New("JWT_SECRET belum diset")
)

/* ==========================
   Types
========================== */

type RegisterInput struct {
	FullName        string
	UserName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	Role            string // kosong → user
}

// Session hasil login/register: token siap ditaruh di cookie.
type Session struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
	Remember  bool
	User      userModel.UserModel
}

type Service struct {
	DB          *gorm.DB
	Secret      []byte
	SessionTTL  time.Duration
	RememberTTL time.Duration
	Now         func() time.Time
}

// New memakai konfigurasi dari configs (JWT_SECRET, SESSION_TTL_HOURS, REMEMBER_ME_TTL_DAYS).
func New(db *gorm.DB) *Service {
	sessionTTL := configs.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	rememberTTL := configs.RememberMeTTL
	if rememberTTL <= 0 {
		rememberTTL = 14 * 24 * time.Hour
	}
	return &Service{
		DB:          db,
		Secret:      []byte(strings.TrimSpace(configs.JWTSecret)),
		SessionTTL:  sessionTTL,
		RememberTTL: rememberTTL,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

/* ==========================
   REGISTER
========================== */

// Register membuat user + profil lalu langsung membuka sesi.
// Username/email yang sudah dipakai → ErrUsernameTaken / ErrEmailTaken, tidak ada baris yang dibuat.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if len(s.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	user, err := s.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, *user, false)
}

// CreateUser: user + profil dalam satu transaksi (dipakai Register dan command create-admin).
func (s *Service) CreateUser(ctx context.Context, in RegisterInput) (*userModel.UserModel, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = strings.TrimSpace(in.Email)

	if len(in.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := s.ensureAvailable(ctx, s.DB, in.UserName, in.Email); err != nil {
		return nil, err
	}

	hash, err := authHelper.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	first, last := userModel.SplitFullName(in.FullName)
	user := userModel.UserModel{
		UserName:  in.UserName,
		Email:     in.Email,
		Password:  hash,
		FirstName: first,
		LastName:  last,
		Role:      in.Role,
		IsActive:  true,
	}
	if user.Role == "" {
		user.Role = constants.RoleUser
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		profile := userProfileModel.UserProfileModel{
			UserProfileUserID: user.ID,
			UserProfilePhone:  strings.TrimSpace(in.Phone),
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			// balapan dengan register lain: tentukan field mana yang bentrok
			if e := s.ensureAvailable(ctx, s.DB, in.UserName, in.Email); e != nil {
				return nil, e
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	log.Printf("[AUTH] user baru %s (%s) role=%s", user.UserName, user.ID, user.Role)
	return &user, nil
}

func (s *Service) ensureAvailable(ctx context.Context, db *gorm.DB, username, email string) error {
	taken, err := authRepo.IsUsernameTaken(ctx, db, username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	taken, err = authRepo.IsEmailTaken(ctx, db, email, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

/* ==========================
   LOGIN (username/email + password)
========================== */

func (s *Service) Login(ctx context.Context, identifier, password string, remember bool) (*Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := authRepo.FindUserByEmailOrUsername(ctx, s.DB, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			authHelper.DummyCompare(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := authHelper.CheckPasswordHash(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	if err := authRepo.TouchLastLogin(ctx, s.DB, user.ID, s.Now()); err != nil {
		log.Printf("[WARN] update last_login_at: %v", err)
	}
	return s.openSession(ctx, *user, remember)
}

func (s *Service) openSession(_ context.Context, user userModel.UserModel, remember bool) (*Session, error) {
	token, claims, err := s.signSession(user, remember, s.Now())
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
		Remember:  remember,
		User:      user,
	}, nil
}

/* ==========================
   AUTHENTICATE
========================== */

// Authenticate memvalidasi token sesi: signature, exp, belum logout, user masih aktif.
func (s *Service) Authenticate(ctx context.Context, raw string) (*Claims, *userModel.UserModel, error) {
	claims, err := s.parseToken(raw, true)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := authRepo.IsSessionRevoked(ctx, s.DB, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check revoked: %w", err)
	}
	if revoked {
		return nil, nil, ErrSessionRevoked
	}

	uid, _ := claims.UserID()
	user, err := authRepo.FindUserByID(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, ErrInactiveUser
	}
	// role bisa berubah setelah token terbit
	claims.Role = user.Role
	return claims, user, nil
}

/* ==========================
   LOGOUT
========================== */

// Logout mencatat jti token ke revoked_sessions. Token kosong / tidak valid → no-op.
func (s *Service) Logout(ctx context.Context, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	claims, err := s.parseToken(raw, false)
	if err != nil {
		log.Printf("[INFO] logout dengan token tidak valid: %v", err)
		return nil
	}
	uid, _ := claims.UserID()
	expires := s.Now().Add(s.RememberTTL)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	if !expires.After(s.Now()) {
		return nil
	}
	return authRepo.RevokeSession(ctx, s.DB, claims.ID, uid, expires)
}

// CleanupRevoked dipanggil scheduler / command cleanup-sessions.
func (s *Service) CleanupRevoked(ctx context.Context) (int64, error) {
	return authRepo.CleanupExpiredSessions(ctx, s.DB, s.Now())
}
