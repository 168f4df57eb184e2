package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds environment-driven configuration.
type Config struct {
	Port           string
	Environment    string
	DatabaseURL    string
	JWTSecret      string
	JWTTTL         time.Duration
	AllowOrigins   string
	UploadDir      string
	PublicBaseURL  string
	CartCookieName string
	LogLevel       string
	AdminEmail     string
	AdminPassword  string
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDatabase is false when no DATABASE_URL is configured; the server then
// falls back to in-memory repositories.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// Load reads .env (when present) and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("JWT_TTL", "72h")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("CART_COOKIE_NAME", "cart_session")
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	ttl, err := time.ParseDuration(getEnvOrViper(v, "JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	cfg := &Config{
		Port:           getEnvOrViper(v, "PORT"),
		Environment:    getEnvOrViper(v, "ENVIRONMENT"),
		DatabaseURL:    strings.TrimSpace(getEnvOrViper(v, "DATABASE_URL")),
		JWTSecret:      getEnvOrViper(v, "JWT_SECRET"),
		JWTTTL:         ttl,
		AllowOrigins:   getEnvOrViper(v, "CORS_ALLOW_ORIGINS"),
		UploadDir:      getEnvOrViper(v, "UPLOAD_DIR"),
		PublicBaseURL:  strings.TrimSuffix(getEnvOrViper(v, "PUBLIC_BASE_URL"), "/"),
		CartCookieName: getEnvOrViper(v, "CART_COOKIE_NAME"),
		LogLevel:       getEnvOrViper(v, "LOG_LEVEL"),
		AdminEmail:     strings.TrimSpace(getEnvOrViper(v, "ADMIN_EMAIL")),
		AdminPassword:  getEnvOrViper(v, "ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive")
	}

	return cfg, nil
}

func getEnvOrViper(v *viper.Viper, key string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return v.GetString(key)
}
