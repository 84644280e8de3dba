package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port                  string
	DatabaseURL           string
	DBMaxOpenConns        int
	DBMaxIdleConns        int
	DBConnMaxLifetimeMin  int
	RedisAddr             string
	RedisPassword         string
	RedisTimeoutSeconds   int
	JWTSecret             string
	AccessTokenTTLMinutes int
	RefreshTokenTTLDays   int
	FrontendURL           string
	AllowedOrigins        []string
	OAuthConfig           OAuthConfig
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal("[CONFIG] JWT_SECRET must be set")
	}

	oauthConfig := LoadOAuthConfig()

	AppConfig = &Config{
		Port:                  port,
		DatabaseURL:           GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", "")),
		DBMaxOpenConns:        GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:        GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin:  GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisAddr:             GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:         GetEnv("REDIS_PASSWORD", ""),
		RedisTimeoutSeconds:   GetEnvAsInt("REDIS_TIMEOUT_SECONDS", 3),
		JWTSecret:             jwtSecret,
		AccessTokenTTLMinutes: GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 30),
		RefreshTokenTTLDays:   GetEnvAsInt("REFRESH_TOKEN_TTL_DAYS", 14),
		FrontendURL:           frontendURL,
		AllowedOrigins:        allowedOrigins,
		OAuthConfig:           *oauthConfig,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
