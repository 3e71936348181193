package auth

import (
	"errors"
	"log"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "library_backend/internals/features/users/auth/service"
	helper "library_backend/internals/helpers"
)

const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
	LocUserName = "user_name"

	LoginPath = "/login"
)

// OptionalAuth memasang identitas user ke Locals kalau token valid.
// Token tidak ada / tidak valid → lanjut sebagai anonim.
func OptionalAuth(db *gorm.DB) fiber.Handler {
	svc := authService.New(db)
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return c.Next()
		}

		claims, user, err := svc.Authenticate(c.UserContext(), raw)
		if err != nil {
			if !authService.IsSessionError(err) {
				log.Printf("[WARN] authenticate: %v", err)
			}
			// cookie basi: bersihkan supaya tidak dikirim terus
			if errors.Is(err, authService.ErrSessionRevoked) || errors.Is(err, authService.ErrTokenExpired) {
				ClearSessionCookie(c)
			}
			return c.Next()
		}

		c.Locals(LocUserID, user.ID.String())
		c.Locals(LocUserRole, claims.Role)
		c.Locals(LocUserName, user.UserName)
		helper.SetRawAccessToken(c, raw)
		return c.Next()
	}
}

// RequireAuth wajib dipasang setelah OptionalAuth.
// Anonim → 401 JSON dengan redirect login, atau 302 untuk klien HTML.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(LocUserID).(string); ok && id != "" {
			return c.Next()
		}
		target := LoginRedirect(c)
		if acceptsHTML(c) {
			return c.Redirect(target, fiber.StatusFound)
		}
		return helper.JsonUnauthorized(c, "Please log in to continue.", target)
	}
}

// LoginRedirect: /login?next=<path asli>
func LoginRedirect(c *fiber.Ctx) string {
	next := string(c.Request().URI().RequestURI())
	if next == "" {
		next = c.Path()
	}
	return LoginPath + "?next=" + url.QueryEscape(next)
}

func acceptsHTML(c *fiber.Ctx) bool {
	accept := c.Get(fiber.HeaderAccept)
	return strings.Contains(accept, fiber.MIMETextHTML) && !strings.Contains(accept, fiber.MIMEApplicationJSON)
}

// ClearSessionCookie menghapus cookie access_token.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     helper.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
