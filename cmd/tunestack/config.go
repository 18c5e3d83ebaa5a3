package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tunestack/internal/auth"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxIdleTime time.Duration
	DBConnectTimeout  time.Duration
	Addr              string
	AllowedOrigins    []string
	Auth              auth.Config
	LogLevel          string
	LogFormat         string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET env var is required")
	}

	ttl := auth.DefaultTTL
	if raw := os.Getenv("JWT_EXPIRATION"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse JWT_EXPIRATION: %w", err)
		}
		ttl = parsed
	}

	maxOpen, err := envIntOrDefault("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, err
	}
	maxIdle, err := envIntOrDefault("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return Config{}, err
	}
	connMaxIdle, err := envDurationOrDefault("DB_CONN_MAX_IDLE_TIME", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	connectTimeout, err := envDurationOrDefault("DB_CONNECT_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	addr := fmt.Sprintf(":%s", envOrDefault("PORT", "8080"))

	origins := parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	return Config{
		DatabaseURL:       dsn,
		DBMaxOpenConns:    maxOpen,
		DBMaxIdleConns:    maxIdle,
		DBConnMaxIdleTime: connMaxIdle,
		DBConnectTimeout:  connectTimeout,
		Addr:              addr,
		AllowedOrigins:    origins,
		Auth: auth.Config{
			Secret:   secret,
			Issuer:   envOrDefault("JWT_ISSUER", "tunestack"),
			Audience: envOrDefault("JWT_AUDIENCE", "tunestack-users"),
			TTL:      ttl,
		},
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func envDurationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
