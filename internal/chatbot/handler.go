package chatbot

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

func (h *Handler) ChatHandler(c *fiber.Ctx) error {
	var body struct {
		Name    string `json:"name" form:"name"`
		Phone   string `json:"phone" form:"phone"`
		Message string `json:"message" form:"message"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Message == "" {
		return response.ValidationError(c, map[string]string{
			"message": "message is required",
		})
	}

	answer := h.svc.Chat(c.Context(), body.Name, body.Phone, body.Message)
	return response.Success(c, fiber.Map{"response": answer}, "Message processed")
}

func (h *Handler) ConversationsHandler(c *fiber.Ctx) error {
	convs, err := h.svc.Conversations()
	if err != nil {
		return response.InternalError(c, "Failed to fetch conversations")
	}
	return response.Success(c, convs, "Conversations retrieved successfully")
}
