package property

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maeva/realestate/internal/media"
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
	if fields.Title == "" {
		return response.ValidationError(c, map[string]string{
			"title": "title is required",
		})
	}

	video, _ := c.FormFile("video")

	var images []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		images = form.File["images"]
	}

	prop, err := h.svc.Create(fields, video, images)
	if err != nil {
		return uploadError(c, err, "Failed to create property")
	}
	return response.Created(c, prop, "Property created successfully")
}

func (h *Handler) UpdateHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid property ID", nil)
	}

	video, _ := c.FormFile("video")

	prop, err := h.svc.Update(uint(id), fieldsFromForm(c), video)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Property")
		}
		return uploadError(c, err, "Failed to update property")
	}
	return response.Success(c, prop, "Property updated successfully")
}

func (h *Handler) DeleteHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid property ID", nil)
	}

	if err := h.svc.Delete(uint(id)); err != nil {
		return response.InternalError(c, "Failed to delete property")
	}
	return response.Success(c, nil, "Property deleted successfully")
}

func (h *Handler) ListHandler(c *fiber.Ctx) error {
	props, err := h.svc.List()
	if err != nil {
		return response.InternalError(c, "Failed to fetch properties")
	}
	return response.Success(c, props, "Properties retrieved successfully")
}

func (h *Handler) FeaturedHandler(c *fiber.Ctx) error {
	props, err := h.svc.Featured()
	if err != nil {
		return response.InternalError(c, "Failed to fetch featured properties")
	}
	return response.Success(c, props, "Featured properties retrieved successfully")
}

func (h *Handler) GetHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid property ID", nil)
	}

	prop, err := h.svc.Get(uint(id))
	if err != nil {
		return response.NotFound(c, "Property")
	}
	return response.Success(c, prop, "Property retrieved successfully")
}

// ServeImageHandler streams one image of a property. Without an index it
// serves the primary image; with one, the image at that display position.
func (h *Handler) ServeImageHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("File not found")
	}

	prop, err := h.svc.Get(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("File not found")
	}

	if raw := c.Params("index"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil || index < 0 || index >= len(prop.Images) {
			return c.Status(fiber.StatusNotFound).SendString("File not found")
		}
		return media.Serve(c, prop.Images[index].Ref())
	}
	return media.Serve(c, prop.PrimaryImageRef())
}

func (h *Handler) ServeVideoHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("File not found")
	}

	prop, err := h.svc.Get(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("File not found")
	}
	return media.Serve(c, prop.VideoRef())
}

func fieldsFromForm(c *fiber.Ctx) Fields {
	fields := Fields{
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		PropertyType: c.FormValue("property_type"),
		Price:        c.FormValue("price"),
		Location:     c.FormValue("location"),
	}
	if raw := c.FormValue("featured"); raw != "" {
		featured := raw == "true" || raw == "on" || raw == "1"
		fields.Featured = &featured
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
