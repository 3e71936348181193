package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	"library_backend/internals/constants"
	"library_backend/internals/databases/dbtest"
	authService "library_backend/internals/features/users/auth/service"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	prev := configs.JWTSecret
	configs.JWTSecret = "middleware-test-secret"
	t.Cleanup(func() { configs.JWTSecret = prev })

	db := dbtest.NewTestDB(t)
	app := fiber.New()
	api := app.Group("/api", OptionalAuth(db))
	api.Get("/public", func(c *fiber.Ctx) error {
		name, _ := c.Locals(LocUserName).(string)
		return c.SendString("hello " + name)
	})
	u := api.Group("/u", RequireAuth())
	u.Get("/my-books", func(c *fiber.Ctx) error { return c.SendString("mine") })
	a := api.Group("/a", RequireAuth(), OnlyRoles(constants.RoleErrorAdmin("catalog management"), constants.AdminOnly...))
	a.Get("/books", func(c *fiber.Ctx) error { return c.SendString("admin") })
	return app, db
}

func sessionFor(t *testing.T, db *gorm.DB, username, role string) string {
	t.Helper()
	svc := authService.New(db)
	ctx := context.Background()
	_, err := svc.CreateUser(ctx, authService.RegisterInput{
		UserName:        username,
		Email:           username + "@example.com",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Role:            role,
	})
	require.NoError(t, err)
	sess, err := svc.Login(ctx, username, "supersecret", false)
	require.NoError(t, err)
	return sess.Token
}

func body(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestRequireAuthAnonymousJSON(t *testing.T) {
	app, _ := newAuthApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/u/my-books?page=2", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body(t, resp.Body), `"redirect":"/login?next=`+url.QueryEscape("/api/u/my-books?page=2")+`"`)
}

func TestRequireAuthAnonymousHTMLRedirects(t *testing.T) {
	app, _ := newAuthApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/u/my-books", nil)
	req.Header.Set(fiber.HeaderAccept, "text/html,application/xhtml+xml")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next="+url.QueryEscape("/api/u/my-books"), resp.Header.Get(fiber.HeaderLocation))
}

func TestValidSessionPasses(t *testing.T) {
	app, db := newAuthApp(t)
	token := sessionFor(t, db, "ada", constants.RoleUser)

	req := httptest.NewRequest(fiber.MethodGet, "/api/u/my-books", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/api/public", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "hello ada", body(t, resp.Body))
}

func TestInvalidTokenIsAnonymous(t *testing.T) {
	app, _ := newAuthApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/public", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello ", body(t, resp.Body))
}

func TestRevokedSessionClearsCookie(t *testing.T) {
	app, db := newAuthApp(t)
	token := sessionFor(t, db, "ada", constants.RoleUser)
	require.NoError(t, authService.New(db).Logout(context.Background(), token))

	req := httptest.NewRequest(fiber.MethodGet, "/api/u/my-books", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), "access_token=;")
}

func TestAdminRoleRequired(t *testing.T) {
	app, db := newAuthApp(t)
	userToken := sessionFor(t, db, "ada", constants.RoleUser)
	adminToken := sessionFor(t, db, "root", constants.RoleAdmin)

	req := httptest.NewRequest(fiber.MethodGet, "/api/a/books", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body(t, resp.Body), "Only admins may access catalog management.")

	req = httptest.NewRequest(fiber.MethodGet, "/api/a/books", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
