package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Feedback store backends
const (
	StoreSupabase = "supabase"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// DefaultUploadFolder is the Cloudinary folder used when the caller does not
// supply one.
const DefaultUploadFolder = "puzzle-requests"

// Candidate environment variable names, in precedence order. The first
// non-empty value wins.
var (
	WebhookURLKeys   = []string{"SHEETS_WEBHOOK_URL", "APPS_SCRIPT_URL"}
	WebhookTokenKeys = []string{"SHEETS_TOKEN", "PUZZLE_REQUEST_TOKEN"}
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	Cloudinary  CloudinaryConfig
	Feedback    FeedbackConfig
	Webhook     WebhookConfig
}

// CloudinaryConfig holds the media host credentials used to sign uploads.
// CloudName and APIKey are safe to hand to the browser; APISecret is not.
type CloudinaryConfig struct {
	CloudName     string
	APIKey        string
	APISecret     string
	DefaultFolder string
}

// FeedbackConfig selects and configures the feedback store
type FeedbackConfig struct {
	Store          string // "supabase", "postgres" or "sqlite"
	SupabaseURL    string
	ServiceRoleKey string
	DatabaseURL    string
	Table          string
	MaxOpenConns   int
	MaxIdleConns   int
}

// WebhookConfig holds the spreadsheet workflow endpoint and its shared token
type WebhookConfig struct {
	URL   string
	Token string
}

// HasCredentials reports whether all three Cloudinary values are present.
func (c CloudinaryConfig) HasCredentials() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// IsConfigured reports whether both the webhook URL and token resolved.
func (c WebhookConfig) IsConfigured() bool {
	return c.URL != "" && c.Token != ""
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CLOUDINARY_UPLOAD_FOLDER", DefaultUploadFolder)
	v.SetDefault("FEEDBACK_STORE", StoreSupabase)
	v.SetDefault("FEEDBACK_TABLE", "feedback")
	v.SetDefault("DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Cloudinary: CloudinaryConfig{
			CloudName:     strings.TrimSpace(v.GetString("CLOUDINARY_CLOUD_NAME")),
			APIKey:        strings.TrimSpace(v.GetString("CLOUDINARY_API_KEY")),
			APISecret:     v.GetString("CLOUDINARY_API_SECRET"),
			DefaultFolder: v.GetString("CLOUDINARY_UPLOAD_FOLDER"),
		},
		Feedback: FeedbackConfig{
			Store:          strings.ToLower(v.GetString("FEEDBACK_STORE")),
			SupabaseURL:    strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
			ServiceRoleKey: v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
			DatabaseURL:    v.GetString("DATABASE_URL"),
			Table:          v.GetString("FEEDBACK_TABLE"),
			MaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:   v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Webhook: WebhookConfig{
			URL:   FirstNonEmpty(v, WebhookURLKeys...),
			Token: FirstNonEmpty(v, WebhookTokenKeys...),
		},
	}

	return config, nil
}

// FirstNonEmpty returns the value of the first key that resolves to a
// non-empty string, or "" when none do.
func FirstNonEmpty(v *viper.Viper, keys ...string) string {
	for _, key := range keys {
		if value := v.GetString(key); value != "" {
			return value
		}
	}
	return ""
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
