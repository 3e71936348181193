package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library_backend/internals/databases/dbtest"
	authModel "library_backend/internals/features/users/auth/model"
	userModel "library_backend/internals/features/users/user/model"
	profileModel "library_backend/internals/features/users/user_profiles/model"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := dbtest.NewTestDB(t)
	return &Service{
		DB:          db,
		Secret:      []byte("test-secret"),
		SessionTTL:  24 * time.Hour,
		RememberTTL: 14 * 24 * time.Hour,
		Now:         func() time.Time { return testNow },
	}, db
}

func registerInput(username, email string) RegisterInput {
	return RegisterInput{
		FullName:        "Ada King Lovelace",
		UserName:        username,
		Email:           email,
		Phone:           "0812",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
	}
}

func countUsers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&n).Error)
	return n
}

func TestRegisterCreatesUserProfileAndSession(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, registerInput(" ada ", "ada@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.False(t, sess.Remember)
	assert.True(t, sess.ExpiresAt.Equal(testNow.Add(24*time.Hour)))
	assert.Equal(t, "ada", sess.User.UserName)
	assert.Equal(t, "Ada", sess.User.FirstName)
	assert.Equal(t, "King Lovelace", sess.User.LastName)
	assert.Equal(t, "user", sess.User.Role)

	var profile profileModel.UserProfileModel
	require.NoError(t, db.Where("user_profile_user_id = ?", sess.User.ID).First(&profile).Error)
	assert.Equal(t, "0812", profile.UserProfilePhone)

	claims, user, err := svc.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.JTI, claims.ID)
	assert.Equal(t, sess.User.ID, user.ID)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("ada", "ada@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("ada", "other@example.com"))
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, registerInput("grace", "ADA@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	assert.Equal(t, int64(1), countUsers(t, db))
}

func TestRegisterPasswordRules(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	in := registerInput("ada", "ada@example.com")
	in.ConfirmPassword = "different1"
	_, err := svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	in = registerInput("ada", "ada@example.com")
	in.Password, in.ConfirmPassword = "short", "short"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	assert.Equal(t, int64(0), countUsers(t, db))
}

func TestRegisterWithoutSecret(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Secret = nil
	_, err := svc.Register(context.Background(), registerInput("ada", "ada@example.com"))
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, registerInput("ada", "ada@example.com"))
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "ada", "supersecret", false)
	require.NoError(t, err)
	assert.Equal(t, "ada", sess.User.UserName)

	sess, err = svc.Login(ctx, " Ada@Example.com ", "supersecret", true)
	require.NoError(t, err)
	assert.True(t, sess.Remember)
	assert.True(t, sess.ExpiresAt.Equal(testNow.Add(14*24*time.Hour)))

	var u userModel.UserModel
	require.NoError(t, db.First(&u, "id = ?", sess.User.ID).Error)
	require.NotNil(t, u.LastLoginAt)

	_, err = svc.Login(ctx, "ada", "wrong-password", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "supersecret", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "", "", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	sess, err := svc.Register(ctx, registerInput("ada", "ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("id = ?", sess.User.ID).
		UpdateColumn("is_active", false).Error)

	_, err = svc.Login(ctx, "ada", "supersecret", false)
	assert.ErrorIs(t, err, ErrInactiveUser)
	_, _, err = svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess, err := svc.Register(ctx, registerInput("ada", "ada@example.com"))
	require.NoError(t, err)

	_, _, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, _, err = svc.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := *svc
	other.Secret = []byte("another-secret")
	_, _, err = other.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.Now = func() time.Time { return testNow.Add(25 * time.Hour) }
	_, _, err = svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.True(t, IsSessionError(err))
}

func TestLogoutRevokesAndCleanup(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	sess, err := svc.Register(ctx, registerInput("ada", "ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.Token))
	// idempotent
	require.NoError(t, svc.Logout(ctx, sess.Token))
	require.NoError(t, svc.Logout(ctx, ""))
	require.NoError(t, svc.Logout(ctx, "garbage"))

	_, _, err = svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrSessionRevoked)

	n, err := svc.CleanupRevoked(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	svc.Now = func() time.Time { return testNow.Add(48 * time.Hour) }
	n, err = svc.CleanupRevoked(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var left int64
	require.NoError(t, db.Model(&authModel.RevokedSessionModel{}).Count(&left).Error)
	assert.Equal(t, int64(0), left)
}

func TestSetPassword(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	sess, err := svc.Register(ctx, registerInput("ada", "ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, SetPassword(ctx, db, sess.User.ID, "brand-new-pass"))
	_, err = svc.Login(ctx, "ada", "supersecret", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ada", "brand-new-pass", false)
	assert.NoError(t, err)
}
