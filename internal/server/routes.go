package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/maeva/realestate/internal/auth"
	"github.com/maeva/realestate/internal/chatbot"
	"github.com/maeva/realestate/internal/post"
	"github.com/maeva/realestate/internal/property"
	"github.com/maeva/realestate/internal/search"
)

type Handlers struct {
	Auth     *auth.Handler
	AuthSvc  *auth.Service
	Property *property.Handler
	Post     *post.Handler
	Chat     *chatbot.Handler
	Search   *search.Handler
}

func SetupRoutes(app *fiber.App, h Handlers) {
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Maeva API is running",
		})
	})

	// ==========================================
	// PUBLIC API
	// ==========================================
	api := app.Group("/api")
	api.Get("/properties", h.Property.ListHandler)
	api.Get("/properties/search", h.Search.SearchHandler)
	api.Get("/properties/locations", h.Search.LocationsHandler)
	api.Get("/properties/featured", h.Property.FeaturedHandler)
	api.Get("/properties/:id", h.Property.GetHandler)
	api.Get("/properties/:id/image", h.Property.ServeImageHandler)
	api.Get("/properties/:id/images/:index", h.Property.ServeImageHandler)
	api.Get("/properties/:id/video", h.Property.ServeVideoHandler)

	api.Get("/posts", h.Post.ListHandler)
	api.Get("/posts/:id", h.Post.GetHandler)
	api.Get("/posts/:id/image", h.Post.ServeImageHandler)
	api.Get("/posts/:id/video", h.Post.ServeVideoHandler)

	api.Post("/chat", h.Chat.ChatHandler)

	// ==========================================
	// ADMIN (session-gated)
	// ==========================================
	admin := app.Group("/admin")
	admin.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}), h.Auth.LoginHandler)

	admin.Use(auth.Protected(h.AuthSvc))
	admin.Post("/logout", h.Auth.LogoutHandler)

	admin.Post("/properties", h.Property.CreateHandler)
	admin.Put("/properties/:id", h.Property.UpdateHandler)
	admin.Delete("/properties/:id", h.Property.DeleteHandler)

	admin.Post("/posts", h.Post.CreateHandler)
	admin.Put("/posts/:id", h.Post.UpdateHandler)
	admin.Delete("/posts/:id", h.Post.DeleteHandler)

	admin.Get("/conversations", h.Chat.ConversationsHandler)
}
