package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	"library_backend/internals/features/users/auth/dto"
	authService "library_backend/internals/features/users/auth/service"
	helper "library_backend/internals/helpers"
	authMiddleware "library_backend/internals/middlewares/auth"
)

var validate = helper.RegisterJSONTagName(validator.New())

const homePath = "/"

type AuthController struct {
	DB   *gorm.DB
	Auth *authService.Service
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Auth: authService.New(db)}
}

// setSessionCookie: remember_me → cookie persisten sampai exp, selain itu cookie sesi browser.
func setSessionCookie(c *fiber.Ctx, s *authService.Session) {
	ck := &fiber.Cookie{
		Name:     helper.AccessTokenCookie,
		Value:    s.Token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   configs.GetEnvBool("COOKIE_SECURE", false),
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if s.Remember {
		ck.Expires = s.ExpiresAt
	} else {
		ck.SessionOnly = true
	}
	c.Cookie(ck)
}

func alreadyLoggedIn(c *fiber.Ctx) bool {
	id, ok := c.Locals(authMiddleware.LocUserID).(string)
	return ok && id != ""
}

// =======================
// 🔑 POST /api/auth/login
// =======================
func (ac *AuthController) Login(c *fiber.Ctx) error {
	if alreadyLoggedIn(c) {
		return helper.JsonNotice(c, fiber.StatusOK, helper.LevelSuccess, "You are already logged in.", homePath, nil)
	}

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	sess, err := ac.Auth.Login(c.UserContext(), req.Username, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidCredentials), errors.Is(err, authService.ErrInactiveUser):
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password.")
		case errors.Is(err, authService.ErrMissingSecret):
			log.Printf("[ERROR] login: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Login is temporarily unavailable")
		}
		log.Printf("[ERROR] login: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log in")
	}

	setSessionCookie(c, sess)
	redirect := c.Query("next", homePath)
	if len(redirect) == 0 || redirect[0] != '/' || (len(redirect) > 1 && redirect[1] == '/') {
		redirect = homePath
	}
	return helper.JsonNotice(c, fiber.StatusOK, helper.LevelSuccess,
		"Welcome back, "+sess.User.DisplayName()+"!", redirect, dto.ToSessionResponse(sess))
}

// =======================
// 📝 POST /api/auth/register
// =======================
func (ac *AuthController) Register(c *fiber.Ctx) error {
	if alreadyLoggedIn(c) {
		return helper.JsonNotice(c, fiber.StatusOK, helper.LevelSuccess, "You are already logged in.", homePath, nil)
	}

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	sess, err := ac.Auth.Register(c.UserContext(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrUsernameTaken):
			return helper.JsonValidationError(c, map[string][]string{"username": {err.Error()}})
		case errors.Is(err, authService.ErrEmailTaken):
			return helper.JsonValidationError(c, map[string][]string{"email": {err.Error()}})
		case errors.Is(err, authService.ErrPasswordMismatch):
			return helper.JsonValidationError(c, map[string][]string{"confirm_password": {err.Error()}})
		case errors.Is(err, authService.ErrPasswordTooShort):
			return helper.JsonValidationError(c, map[string][]string{"password": {err.Error()}})
		}
		log.Printf("[ERROR] register: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	setSessionCookie(c, sess)
	return helper.JsonNotice(c, fiber.StatusCreated, helper.LevelSuccess,
		"Account created successfully! Welcome to the library.", homePath, dto.ToSessionResponse(sess))
}

// =======================
// 🚪 POST /api/auth/logout
// =======================
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Auth.Logout(c.UserContext(), helper.GetRawAccessToken(c)); err != nil {
		log.Printf("[WARN] logout: %v", err)
	}
	authMiddleware.ClearSessionCookie(c)
	return helper.JsonNotice(c, fiber.StatusOK, helper.LevelSuccess,
		"You have been logged out successfully.", homePath, nil)
}

// =======================
// 👤 GET /api/auth/me
// =======================
func (ac *AuthController) Me(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	_, user, err := ac.Auth.Authenticate(c.UserContext(), raw)
	if err != nil {
		return helper.JsonUnauthorized(c, "Please log in to continue.", authMiddleware.LoginRedirect(c))
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(*user))
}
