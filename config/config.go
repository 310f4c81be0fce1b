package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBUrl          string
	Environment    string
	Port           string
	AllowedOrigins []string
	ServiceTimeout time.Duration

	Media  MediaConfig
	Mailer MailerConfig
}

// MediaConfig holds configuration for the image upload adapter.
type MediaConfig struct {
	Provider        string // "s3" or "noop"
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // public base URL for uploaded objects; defaults to the bucket's S3 URL
}

// MailerConfig holds configuration for the booking confirmation mailer.
type MailerConfig struct {
	Provider        string // "ses" or "noop"
	FromAddress     string
	FromName        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		DBUrl:       os.Getenv("DATABASE_URL"),
		Port:        os.Getenv("PORT"),
		Media: MediaConfig{
			Provider:        os.Getenv("MEDIA_PROVIDER"),
			Bucket:          os.Getenv("MEDIA_S3_BUCKET"),
			Region:          os.Getenv("MEDIA_S3_REGION"),
			AccessKeyID:     os.Getenv("MEDIA_S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("MEDIA_S3_SECRET_ACCESS_KEY"),
			BaseURL:         os.Getenv("MEDIA_BASE_URL"),
		},
		Mailer: MailerConfig{
			Provider:        os.Getenv("MAILER_PROVIDER"),
			FromAddress:     os.Getenv("MAILER_FROM_ADDRESS"),
			FromName:        os.Getenv("MAILER_FROM_NAME"),
			Region:          os.Getenv("MAILER_SES_REGION"),
			AccessKeyID:     os.Getenv("MAILER_SES_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("MAILER_SES_SECRET_ACCESS_KEY"),
		},
	}

	// The process must not serve requests without a data source.
	if cfg.DBUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Media.Provider == "" {
		cfg.Media.Provider = "noop"
	}
	if cfg.Mailer.Provider == "" {
		cfg.Mailer.Provider = "noop"
	}

	cfg.ServiceTimeout = 10 * time.Second
	if s := os.Getenv("SERVICE_TIMEOUT_SECONDS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			cfg.ServiceTimeout = time.Duration(v) * time.Second
		}
	}

	if s := os.Getenv("ALLOWED_ORIGINS"); s != "" {
		for _, o := range strings.Split(s, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}
