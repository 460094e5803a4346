package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maeva/realestate/internal/config"
	"github.com/maeva/realestate/internal/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) LoginHandler(c *fiber.Ctx) error {
	var body struct {
		Password string `json:"password" form:"password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Password == "" {
		return response.ValidationError(c, map[string]string{
			"password": "password is required",
		})
	}

	token, err := h.svc.Login(body.Password)
	if err != nil {
		if errors.Is(err, ErrBadPassword) {
			return response.Unauthorized(c, "Wrong password", nil)
		}
		return response.InternalError(c, "Failed to create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  time.Now().Add(config.SessionLifetime),
		HTTPOnly: true,
		SameSite: "Strict",
	})

	return response.Success(c, fiber.Map{
		"token":      token,
		"expires_in": int(config.SessionLifetime.Seconds()),
	}, "Login successful")
}

func (h *Handler) LogoutHandler(c *fiber.Ctx) error {
	h.svc.Logout(TokenFromRequest(c))
	c.ClearCookie(cookieName)
	return response.Success(c, nil, "Logout successful")
}
