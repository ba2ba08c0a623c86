package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string

	// Admin credentials are only needed to create the database on first boot.
	AdminUser     string
	AdminPassword string
}

// DSN builds a postgres:// URL. Credentials are escaped with url.UserPassword.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=disable",
		url.UserPassword(c.User, c.Password).String(),
		c.Host,
		c.Port,
		url.PathEscape(c.Name),
	)
}

type Config struct {
	Port        int
	Env         string
	DB          DBConfig
	DatabaseURL string

	JWTSecret []byte
	TokenTTL  time.Duration

	RedisURL string

	CORSOrigins []string
	// TrustedProxies are the only peers whose X-Forwarded-For is believed when
	// resolving the client IP. Empty trusts none.
	TrustedProxies []string

	AuthRateLimit float64
	AuthBurst     int
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// PostgresDSN prefers DATABASE_URL and falls back to the DB_* variables.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DB.DSN()
}

// Load reads the process environment, after merging a .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:         GetEnv("APP_ENV", GetEnv("NODE_ENV", EnvDevelopment)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		DB: DBConfig{
			Host:          GetEnv("DB_HOST", "localhost"),
			Port:          GetEnv("DB_PORT", "5432"),
			User:          os.Getenv("DB_USERNAME"),
			Password:      os.Getenv("DB_PASSWORD"),
			Name:          os.Getenv("DB_DATABASE"),
			AdminUser:     os.Getenv("DB_ADMIN_USER"),
			AdminPassword: os.Getenv("DB_ADMIN_PASSWORD"),
		},
	}

	port, err := strconv.Atoi(GetEnv("PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Port = port

	if cfg.DatabaseURL == "" {
		if cfg.DB.User == "" {
			return nil, fmt.Errorf("DB_USERNAME environment variable is required")
		}
		if cfg.DB.Name == "" {
			return nil, fmt.Errorf("DB_DATABASE environment variable is required")
		}
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	cfg.JWTSecret = []byte(secret)

	cfg.TokenTTL, err = time.ParseDuration(GetEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg.CORSOrigins = splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173"))
	cfg.TrustedProxies = splitList(os.Getenv("TRUSTED_PROXIES"))

	cfg.AuthRateLimit, err = strconv.ParseFloat(GetEnv("AUTH_RATE_LIMIT", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
	}
	cfg.AuthBurst, err = strconv.Atoi(GetEnv("AUTH_RATE_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
	}

	return cfg, nil
}

// GetEnv gets an environment variable or returns a default value if not present
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
