package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	AMQPURL     string
	BrandName   string

	GenerationLatency time.Duration
	GenerationTimeout time.Duration
	AllowedOrigins    []string
}

// Load reads configuration from environment variables, loading a .env file
// first when one exists. Without DATABASE_URL the demo directory is used;
// without AMQP_URL handoffs stay in process.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		BrandName:         getEnv("BRAND_NAME", "Campaign Builder"),
		GenerationLatency: getDuration("GENERATION_LATENCY", 2*time.Second),
		GenerationTimeout: getDuration("GENERATION_TIMEOUT", 30*time.Second),
		AllowedOrigins:    []string{"*"},
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if cfg.Env == "production" && cfg.AMQPURL == "" {
		panic("AMQP_URL is required in production")
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
