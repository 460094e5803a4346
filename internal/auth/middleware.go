package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/maeva/realestate/internal/response"
)

const cookieName = "admin_token"

// Protected gates administrative routes. The token is taken from the
// Authorization header or the admin cookie; anything missing, unknown, or
// expired gets a 401 pointing back at the login entry point.
func Protected(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if err := svc.Authorize(token); err != nil {
			c.ClearCookie(cookieName)
			return response.Unauthorized(c, "Session expired or invalid. Please log in again.", fiber.Map{
				"login": "/admin/login",
			})
		}
		c.Locals("admin_token", token)
		return c.Next()
	}
}

// TokenFromRequest extracts the session token from a Bearer header, falling
// back to the admin cookie.
func TokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies(cookieName)
}
