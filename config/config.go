package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	GinMode           string
	DBUrl             string
	FrontendURL       string
	SupabaseUrl       string
	SupabaseJWTSecret string
	// Email dispatch service (remote send-email endpoint)
	DispatchURL string
	// Admin access (comma-separated list of allowed admin emails)
	AdminEmails []string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitUploadThreshold  int
	RateLimitGlobalThreshold  int
	// Draft lifecycle
	DraftTTLMinutes int
	// Attachment archive (S3-compatible storage)
	ArchiveBucket      string
	ArchiveRegion      string
	ArchiveAccessKey   string
	ArchiveSecretKey   string
	ArchiveEndpoint    string
	ArchiveThumbnails  bool
	ArchiveMaxThumbDim int
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development; ignored in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		DBUrl:   getEnv("DATABASE_URL", ""),
		// Strip trailing slashes so path joins never produce double slashes
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		DispatchURL:       getEnv("DISPATCH_URL", "https://hushh-api-53407187172.us-central1.run.app/send-email"),
		AdminEmails:       splitList(getEnv("ADMIN_EMAILS", "")),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 10),
		RateLimitUploadThreshold:  getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 20),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Draft lifecycle
		DraftTTLMinutes: getEnvInt("DRAFT_TTL_MINUTES", 60),
		// Attachment archive
		ArchiveBucket:      getEnv("ARCHIVE_BUCKET", ""),
		ArchiveRegion:      getEnv("ARCHIVE_REGION", "us-east-1"),
		ArchiveAccessKey:   getEnv("ARCHIVE_ACCESS_KEY_ID", ""),
		ArchiveSecretKey:   getEnv("ARCHIVE_SECRET_ACCESS_KEY", ""),
		ArchiveEndpoint:    getEnv("ARCHIVE_ENDPOINT", ""),
		ArchiveThumbnails:  getEnvBool("ARCHIVE_THUMBNAILS", true),
		ArchiveMaxThumbDim: getEnvInt("ARCHIVE_THUMB_MAX_DIM", 320),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Submissions will not be archived.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if len(cfg.AdminEmails) == 0 {
		log.Println("WARNING: ADMIN_EMAILS not configured. Admin endpoints will reject all users.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// splitList splits a comma-separated env value, trimming blanks
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	return out
}
