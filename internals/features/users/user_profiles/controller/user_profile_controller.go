package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	authService "library_backend/internals/features/users/auth/service"
	"library_backend/internals/features/users/user_profiles/dto"
	profileService "library_backend/internals/features/users/user_profiles/service"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/media"
)

var validate = helper.RegisterJSONTagName(validator.New())

const (
	pictureFolder = "profile_pictures"
	profilePath   = "/profile"
)

type UserProfileController struct {
	DB       *gorm.DB
	Profiles *profileService.Service
	Media    *media.Store
}

func NewUserProfileController(db *gorm.DB) *UserProfileController {
	return &UserProfileController{
		DB:       db,
		Profiles: profileService.New(db),
		Media:    media.NewStore(configs.MediaRoot),
	}
}

// =======================
// 👤 GET /api/u/profile (profil dibuat kalau belum ada)
// =======================
func (ctl *UserProfileController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctl.Profiles.GetOrCreate(c.UserContext(), userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("[ERROR] get profile %s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	return helper.JsonOK(c, "ok", dto.ToUserProfileResponse(p))
}

// =======================
// ✏️ PATCH /api/u/profile (JSON / multipart + profile_picture)
// =======================
func (ctl *UserProfileController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateUserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	old, err := ctl.Profiles.GetOrCreate(c.UserContext(), userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("[ERROR] load profile %s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}

	in := req.ToInput()
	url, err := ctl.savePicture(c)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"profile_picture": {err.Error()}})
	}
	if url != "" {
		in.PictureURL = &url
	}

	p, err := ctl.Profiles.Update(c.UserContext(), userID, in)
	if err != nil {
		ctl.Media.Delete(url)
		switch {
		case errors.Is(err, authService.ErrEmailTaken):
			return helper.JsonValidationError(c, map[string][]string{"email": {err.Error()}})
		case errors.Is(err, authService.ErrPasswordMismatch):
			return helper.JsonValidationError(c, map[string][]string{"confirm_new_password": {err.Error()}})
		case errors.Is(err, authService.ErrPasswordTooShort):
			return helper.JsonValidationError(c, map[string][]string{"new_password": {err.Error()}})
		}
		log.Printf("[ERROR] update profile %s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	if url != "" {
		ctl.Media.Delete(old.Profile.UserProfilePicture)
	}

	return helper.JsonNotice(c, fiber.StatusOK, helper.LevelSuccess,
		"Profile updated successfully!", profilePath, dto.ToUserProfileResponse(p))
}

func (ctl *UserProfileController) savePicture(c *fiber.Ctx) (string, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return "", nil
	}
	fh, err := c.FormFile("profile_picture")
	if err != nil || fh == nil {
		return "", nil
	}
	return ctl.Media.SaveImage(pictureFolder, fh, media.ProfilePictureOptions)
}
