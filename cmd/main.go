package main

import (
	"log"

	"github.com/maeva/realestate/internal/chatbot"
	"github.com/maeva/realestate/internal/config"
	"github.com/maeva/realestate/internal/database"
	"github.com/maeva/realestate/internal/server"
)

func main() {
	cfg := config.Load()

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		log.Fatal("❌ ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	if err := database.RunBlobColumnMigrations(db); err != nil {
		log.Fatal("❌ Blob column migrations failed: ", err)
	}

	// ========== CHAT COLLABORATOR ==========
	var responder chatbot.Responder
	if cfg.OpenAIKey != "" {
		responder = chatbot.NewOpenAIResponder(cfg.OpenAIKey, cfg.OpenAIModel)
		log.Printf("🤖 Chat collaborator enabled (model: %s)", cfg.OpenAIModel)
	} else {
		responder = chatbot.StaticResponder{}
		log.Println("⚠️  OPENAI_API_KEY not set, chat will use the fallback message")
	}

	// ========== START SERVER ==========
	app, err := server.New(db, cfg, responder)
	if err != nil {
		log.Fatal("❌ Failed to build server: ", err)
	}

	log.Printf("🚀 Maeva server starting on %s", cfg.ServerAddr)
	log.Printf("📦 Storage backend: %s", cfg.StorageBackend)

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
