package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/circulation/reviews/dto"
	reviewService "library_backend/internals/features/circulation/reviews/service"
	helper "library_backend/internals/helpers"
)

var validate = helper.RegisterJSONTagName(validator.New())

type ReviewController struct {
	DB      *gorm.DB
	Reviews *reviewService.Service
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db, Reviews: reviewService.New(db)}
}

// =======================
// ⭐ POST /api/u/books/:id/reviews
// =======================
func (ctl *ReviewController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	bookID, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
	}
	redirect := fmt.Sprintf("/books/%d", bookID)

	// gerbang dicek dulu supaya pesan sama dengan form review
	if err := ctl.Reviews.Eligibility(c.UserContext(), userID, bookID); err != nil {
		return ctl.writeError(c, err, redirect)
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	review, err := ctl.Reviews.Create(c.UserContext(), userID, bookID, req.Rating, req.Comment)
	if err != nil {
		return ctl.writeError(c, err, redirect)
	}
	return helper.JsonNotice(c, fiber.StatusCreated, helper.LevelSuccess,
		"Your review has been added successfully!", redirect, dto.ToReviewResponse(*review))
}

func (ctl *ReviewController) writeError(c *fiber.Ctx, err error, redirect string) error {
	switch {
	case helper.IsNotFound(err):
		return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
	case errors.Is(err, reviewService.ErrReviewNotAllowed):
		return helper.JsonNotice(c, 0, helper.LevelError,
			"You can only review books you have borrowed.", redirect, nil)
	case errors.Is(err, reviewService.ErrReviewExists):
		return helper.JsonNotice(c, 0, helper.LevelWarning,
			"You have already reviewed this book.", redirect, nil)
	case errors.Is(err, reviewService.ErrInvalidRating):
		return helper.JsonValidationError(c, map[string][]string{"rating": {err.Error()}})
	}
	log.Printf("[ERROR] review: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save review")
}
