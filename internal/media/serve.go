package media

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Serve streams a resolved asset with inline disposition and a one hour cache
// lifetime. Remote refs redirect to their object URL; unresolvable refs get a
// plain-text 404.
func Serve(c *fiber.Ctx, ref AssetRef) error {
	data, contentType, filename, err := ref.Resolve()
	if err != nil {
		if errors.Is(err, ErrRemote) {
			return c.Redirect(ref.Path, fiber.StatusFound)
		}
		return c.Status(fiber.StatusNotFound).SendString("File not found")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Set(fiber.HeaderCacheControl, "max-age=3600")
	return c.Send(data)
}
