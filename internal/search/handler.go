package search

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maeva/realestate/internal/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) SearchHandler(c *fiber.Ctx) error {
	params := Params{
		Query:        c.Query("q", ""),
		PropertyType: c.Query("type", ""),
		Location:     c.Query("location", ""),
		FromDate:     c.Query("from", ""),
		ToDate:       c.Query("to", ""),
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 10),
		SortBy:       c.Query("sort_by", "created_at"),
		OrderBy:      c.Query("order_by", "desc"),
		MinPrice:     c.QueryFloat("min_price", 0),
		MaxPrice:     c.QueryFloat("max_price", 0),
	}

	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		params.Featured = &featured
	}

	result, err := h.svc.Search(params)
	if err != nil {
		return response.InternalError(c, "Search failed")
	}

	meta := &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}
	return response.SuccessWithMeta(c, result.Properties, meta, "Search completed successfully")
}

func (h *Handler) LocationsHandler(c *fiber.Ctx) error {
	locations, err := h.svc.Locations()
	if err != nil {
		return response.InternalError(c, "Failed to fetch locations")
	}
	return response.Success(c, locations, "Locations retrieved successfully")
}
