package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	"library_backend/internals/features/catalog/authors/dto"
	authorService "library_backend/internals/features/catalog/authors/service"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/media"
)

var validate = helper.RegisterJSONTagName(validator.New())

const photoFolder = "author_photos"

type AuthorController struct {
	DB      *gorm.DB
	Authors *authorService.Service
	Media   *media.Store
}

func NewAuthorController(db *gorm.DB) *AuthorController {
	return &AuthorController{
		DB:      db,
		Authors: authorService.New(db),
		Media:   media.NewStore(configs.MediaRoot),
	}
}

// GET /authors
func (ctl *AuthorController) List(c *fiber.Ctx) error {
	rows, err := ctl.Authors.ListWithCounts(c.UserContext())
	if err != nil {
		log.Printf("[ERROR] list authors: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load authors")
	}
	return helper.JsonList(c, "ok", dto.ToAuthorResponses(rows), nil)
}

// GET /authors/:id
func (ctl *AuthorController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Author not found")
	}
	author, books, err := ctl.Authors.Detail(c.UserContext(), id)
	if err != nil {
		return ctl.writeError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToAuthorDetailResponse(*author, books))
}

// POST /api/a/authors
func (ctl *AuthorController) Create(c *fiber.Ctx) error {
	var req dto.CreateAuthorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	in := req.ToInput()
	url, err := ctl.savePhoto(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if url != "" {
		in.Photo = &url
	}

	author, err := ctl.Authors.Create(c.UserContext(), in)
	if err != nil {
		ctl.Media.Delete(url)
		return ctl.writeError(c, err)
	}
	return helper.JsonCreated(c, "Author created", dto.ToAuthorResponse(*author, 0))
}

// PUT /api/a/authors/:id
func (ctl *AuthorController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Author not found")
	}
	var req dto.UpdateAuthorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	old, err := ctl.Authors.Get(c.UserContext(), id)
	if err != nil {
		return ctl.writeError(c, err)
	}

	in := req.ToInput()
	url, err := ctl.savePhoto(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if url != "" {
		in.Photo = &url
	}

	author, err := ctl.Authors.Update(c.UserContext(), id, in)
	if err != nil {
		ctl.Media.Delete(url)
		return ctl.writeError(c, err)
	}
	if url != "" {
		ctl.Media.Delete(old.AuthorPhoto)
	}
	return helper.JsonUpdated(c, "Author updated", dto.ToAuthorResponse(*author, 0))
}

// DELETE /api/a/authors/:id (buku penulis ikut terhapus)
func (ctl *AuthorController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Author not found")
	}
	author, err := ctl.Authors.Delete(c.UserContext(), id)
	if err != nil {
		return ctl.writeError(c, err)
	}
	ctl.Media.Delete(author.AuthorPhoto)
	return helper.JsonDeleted(c, "Author deleted", fiber.Map{"author_id": id})
}

func (ctl *AuthorController) savePhoto(c *fiber.Ctx) (string, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return "", nil
	}
	fh, err := c.FormFile("author_photo")
	if err != nil || fh == nil {
		return "", nil
	}
	return ctl.Media.SaveImage(photoFolder, fh, media.AuthorPhotoOptions)
}

func (ctl *AuthorController) writeError(c *fiber.Ctx, err error) error {
	if helper.IsNotFound(err) {
		return helper.JsonError(c, fiber.StatusNotFound, "Author not found")
	}
	log.Printf("[ERROR] author: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process author")
}
