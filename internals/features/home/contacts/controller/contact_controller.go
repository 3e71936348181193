package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/home/contacts/dto"
	contactService "library_backend/internals/features/home/contacts/service"
	helper "library_backend/internals/helpers"
)

var validate = helper.RegisterJSONTagName(validator.New())

type ContactController struct {
	DB       *gorm.DB
	Contacts *contactService.Service
}

func NewContactController(db *gorm.DB) *ContactController {
	return &ContactController{DB: db, Contacts: contactService.New(db)}
}

// ✉️ POST /api/contact
func (ctl *ContactController) Create(c *fiber.Ctx) error {
	var req dto.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Contacts.Create(c.UserContext(), req.ToInput())
	if err != nil {
		log.Printf("[ERROR] contact: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to send message")
	}
	return helper.JsonNotice(c, fiber.StatusCreated, helper.LevelSuccess,
		"Your message has been sent successfully!", "/contact", dto.ToContactResponse(*m))
}
