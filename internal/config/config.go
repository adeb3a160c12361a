package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	SessionSecret   string
	SessionLifetime time.Duration
	CookieSecure    bool
	CookieHTTPOnly  bool
	CookieSameSite  string

	BodyLimit   string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/authportal?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),

		SessionSecret:   getEnv("SESSION_SECRET", "change-me"),
		SessionLifetime: time.Duration(getEnvInt("SESSION_LIFETIME_DAYS", 7)) * 24 * time.Hour,
		// Secure stays false for local development; set to true behind HTTPS.
		CookieSecure:   getEnvBool("SESSION_COOKIE_SECURE", false),
		CookieHTTPOnly: getEnvBool("SESSION_COOKIE_HTTPONLY", true),
		CookieSameSite: getEnv("SESSION_COOKIE_SAMESITE", "Lax"),

		BodyLimit:   getEnv("BODY_LIMIT", "16M"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
