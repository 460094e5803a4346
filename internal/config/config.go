package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// SessionLifetime is how long an admin token stays valid after login.
	SessionLifetime = 2 * time.Hour
	// MaxImagesPerProperty caps the image batch of a single submission.
	MaxImagesPerProperty = 10
)

// Storage backend selection for uploaded media.
const (
	BackendFilesystem = "filesystem"
	BackendDatabase   = "database"
)

type Config struct {
	ServerAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	StorageBackend string
	UploadDir      string
	UseS3          bool
	S3Bucket       string
	S3Region       string
	CloudFrontURL  string

	MaxImageSizeMB int
	MaxVideoSizeMB int
	SniffContent   bool

	AdminPassword     string
	AdminPasswordHash string

	OpenAIKey   string
	OpenAIModel string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "maeva"),

		StorageBackend: getEnv("STORAGE_BACKEND", BackendFilesystem),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		UseS3:          getEnvBool("USE_S3", false),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", ""),
		CloudFrontURL:  getEnv("CLOUDFRONT_URL", ""),

		MaxImageSizeMB: getEnvInt("MAX_IMAGE_SIZE_MB", 10),
		MaxVideoSizeMB: getEnvInt("MAX_VIDEO_SIZE_MB", 30),
		SniffContent:   getEnvBool("SNIFF_CONTENT", true),

		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}

	log.Println("✅ Config loaded")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
