package config

import (
	"os"
	"strconv"
)

type Config struct {
	DB        DBConfig
	JWT       JWTConfig
	Server    ServerConfig
	ShortLink ShortLinkConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type ServerConfig struct {
	Port string
}

type ShortLinkConfig struct {
	// BaseURL is the public address short links are served from,
	// e.g. https://lnk.example.com.
	BaseURL string
	// CodeLength is the number of hex characters in generated codes.
	CodeLength int
}

func Load() *Config {
	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "linkhive"),
			Password: getEnv("DB_PASSWORD", "linkhive_secret"),
			Name:     getEnv("DB_NAME", "linkhive"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-me-in-production"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		ShortLink: ShortLinkConfig{
			BaseURL:    getEnv("SHORTLINK_BASE_URL", "http://localhost:8080"),
			CodeLength: getEnvAsInt("SHORTLINK_CODE_LENGTH", 6),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
