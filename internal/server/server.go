package server

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/maeva/realestate/internal/auth"
	"github.com/maeva/realestate/internal/chatbot"
	"github.com/maeva/realestate/internal/config"
	"github.com/maeva/realestate/internal/media"
	"github.com/maeva/realestate/internal/post"
	"github.com/maeva/realestate/internal/property"
	"github.com/maeva/realestate/internal/search"
	"gorm.io/gorm"
)

// New wires the storage backend, upload pipeline, and feature services, and
// returns the configured fiber app.
func New(db *gorm.DB, cfg *config.Config, responder chatbot.Responder) (*fiber.App, error) {
	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	var sniffer media.Sniffer = media.ExtensionOnlySniffer{}
	if cfg.SniffContent {
		sniffer = media.SignatureSniffer{}
	}

	pipeline := &media.Pipeline{
		Validator: media.NewValidator(cfg.MaxImageSizeMB, cfg.MaxVideoSizeMB, sniffer),
		Store:     store,
	}

	authSvc := auth.NewService(db, cfg.AdminPassword, cfg.AdminPasswordHash)

	handlers := Handlers{
		Auth:     auth.NewHandler(authSvc),
		AuthSvc:  authSvc,
		Property: property.NewHandler(property.NewService(db, pipeline)),
		Post:     post.NewHandler(post.NewService(db, pipeline)),
		Chat:     chatbot.NewHandler(chatbot.NewService(db, responder)),
		Search:   search.NewHandler(search.NewService(db)),
	}

	app := fiber.New(fiber.Config{
		// Leave headroom above the video ceiling for multipart overhead.
		BodyLimit: (cfg.MaxVideoSizeMB + 10) * 1024 * 1024,
	})

	if cfg.StorageBackend == config.BackendFilesystem && !cfg.UseS3 {
		app.Static("/uploads", cfg.UploadDir, fiber.Static{
			Compress:  true,
			ByteRange: true,
			Browse:    false,
			MaxAge:    3600,
		})
	}

	SetupRoutes(app, handlers)
	return app, nil
}

// buildStore selects the deployment's storage strategy. An S3 init failure
// falls back to local storage rather than refusing to start.
func buildStore(cfg *config.Config) (media.Store, error) {
	if cfg.UseS3 {
		if cfg.S3Bucket != "" && cfg.S3Region != "" {
			s3Store, err := media.NewS3Store(cfg.S3Bucket, cfg.S3Region, cfg.CloudFrontURL)
			if err == nil {
				log.Printf("☁️  Using S3 storage: %s (region: %s)", cfg.S3Bucket, cfg.S3Region)
				return s3Store, nil
			}
			log.Println("⚠️  S3 initialization failed:", err)
			log.Println("⚠️  Falling back to local storage")
		} else {
			log.Println("⚠️  USE_S3=true but S3_BUCKET or S3_REGION not configured")
			log.Println("⚠️  Falling back to local storage")
		}
		return media.NewLocalStore(cfg.UploadDir)
	}

	switch cfg.StorageBackend {
	case config.BackendDatabase:
		log.Println("🗄️  Using DATABASE blob storage")
		return media.NewBlobStore(), nil
	case config.BackendFilesystem:
		log.Printf("💾 Using LOCAL storage mode (./%s/)", cfg.UploadDir)
		return media.NewLocalStore(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
