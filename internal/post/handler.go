package post

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maeva/realestate/internal/media"
	"github.com/maeva/realestate/internal/models"
	"github.com/maeva/realestate/internal/response"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateHandler(c *fiber.Ctx) error {
	fields := fieldsFromForm(c)
	if fields.Title == "" || fields.Content == "" {
		return response.ValidationError(c, map[string]string{
			"title":   "title is required",
			"content": "content is required",
		})
	}

	image, _ := c.FormFile("image")
	video, _ := c.FormFile("video")

	p, err := h.svc.Create(fields, image, video)
	if err != nil {
		return uploadError(c, err, "Failed to create post")
	}
	return response.Created(c, p, "Post created successfully")
}

func (h *Handler) UpdateHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid post ID", nil)
	}

	image, _ := c.FormFile("image")
	video, _ := c.FormFile("video")

	p, err := h.svc.Update(uint(id), fieldsFromForm(c), image, video)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Post")
		}
		return uploadError(c, err, "Failed to update post")
	}
	return response.Success(c, p, "Post updated successfully")
}

func (h *Handler) DeleteHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid post ID", nil)
	}

	if err := h.svc.Delete(uint(id)); err != nil {
		return response.InternalError(c, "Failed to delete post")
	}
	return response.Success(c, nil, "Post deleted successfully")
}

func (h *Handler) ListHandler(c *fiber.Ctx) error {
	posts, err := h.svc.List()
	if err != nil {
		return response.InternalError(c, "Failed to fetch posts")
	}
	return response.Success(c, posts, "Posts retrieved successfully")
}

func (h *Handler) GetHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid post ID", nil)
	}

	p, err := h.svc.Get(uint(id))
	if err != nil {
		return response.NotFound(c, "Post")
	}
	return response.Success(c, p, "Post retrieved successfully")
}

func (h *Handler) ServeImageHandler(c *fiber.Ctx) error {
	p, err := h.load(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("File not found")
	}
	return media.Serve(c, p.ImageRef())
}

func (h *Handler) ServeVideoHandler(c *fiber.Ctx) error {
	p, err := h.load(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("File not found")
	}
	return media.Serve(c, p.VideoRef())
}

func (h *Handler) load(c *fiber.Ctx) (*models.Post, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(uint(id))
}

func fieldsFromForm(c *fiber.Ctx) Fields {
	fields := Fields{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}
	if raw := c.FormValue("featured"); raw != "" {
		featured := raw == "true" || raw == "on" || raw == "1"
		fields.Featured = &featured
	}
	if raw := c.FormValue("tags"); raw != "" {
		json.Unmarshal([]byte(raw), &fields.Tags)
	}
	return fields
}

func uploadError(c *fiber.Ctx, err error, fallback string) error {
	var verr *media.ValidationError
	if errors.As(err, &verr) {
		return response.BadRequest(c, verr.Error(), nil)
	}
	return response.InternalError(c, fallback)
}
