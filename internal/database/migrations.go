package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// blobColumnMigrations are the additive statements that brought blob storage
// to databases created before the dual-storage pipeline. ADD COLUMN IF NOT
// EXISTS makes every statement idempotent, so the whole list runs on each
// startup.
var blobColumnMigrations = []string{
	"ALTER TABLE properties ADD COLUMN IF NOT EXISTS video_data BYTEA",
	"ALTER TABLE properties ADD COLUMN IF NOT EXISTS video_filename VARCHAR(255)",
	"ALTER TABLE properties ADD COLUMN IF NOT EXISTS video_content_type VARCHAR(100)",

	"ALTER TABLE property_images ADD COLUMN IF NOT EXISTS image_data BYTEA",
	"ALTER TABLE property_images ADD COLUMN IF NOT EXISTS image_filename VARCHAR(255)",
	"ALTER TABLE property_images ADD COLUMN IF NOT EXISTS image_content_type VARCHAR(100)",

	"ALTER TABLE posts ADD COLUMN IF NOT EXISTS image_data BYTEA",
	"ALTER TABLE posts ADD COLUMN IF NOT EXISTS image_filename VARCHAR(255)",
	"ALTER TABLE posts ADD COLUMN IF NOT EXISTS image_content_type VARCHAR(100)",
	"ALTER TABLE posts ADD COLUMN IF NOT EXISTS video_data BYTEA",
	"ALTER TABLE posts ADD COLUMN IF NOT EXISTS video_filename VARCHAR(255)",
	"ALTER TABLE posts ADD COLUMN IF NOT EXISTS video_content_type VARCHAR(100)",
}

// RunBlobColumnMigrations applies the additive blob-column statements.
// Postgres only; other dialects (sqlite in tests) get the full schema from
// AutoMigrate.
func RunBlobColumnMigrations(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	for _, stmt := range blobColumnMigrations {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration failed (%s): %v", stmt, err)
		}
	}

	log.Println("✅ Blob column migrations applied")
	return nil
}
