package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/home/home/dto"
	homeService "library_backend/internals/features/home/home/service"
	helper "library_backend/internals/helpers"
)

type HomeController struct {
	DB   *gorm.DB
	Home *homeService.Service
}

func NewHomeController(db *gorm.DB) *HomeController {
	return &HomeController{DB: db, Home: homeService.New(db)}
}

// 🏠 GET /api/
func (ctl *HomeController) Index(c *fiber.Ctx) error {
	h, err := ctl.Home.Home(c.UserContext())
	if err != nil {
		log.Printf("[ERROR] home: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load home page")
	}
	return helper.JsonOK(c, "ok", dto.ToHomeResponse(h))
}
