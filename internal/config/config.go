package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ImageModel    string

	LogLevel string
	Debug    bool

	PreferIPv4 bool

	WebAddr         string
	LibraryPath     string
	LibraryCapacity int
	RequestTimeout  time.Duration
	HTTPTimeout     time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		OpenAIBaseURL:   strings.TrimSpace(getEnv("OPENAI_BASE_URL", "https://api.openai.com")),
		ImageModel:      strings.TrimSpace(getEnv("IMAGE_MODEL", "gpt-image-1")),
		LogLevel:        strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
		Debug:           getEnvBool("DEBUG", false),
		PreferIPv4:      getEnvBool("PREFER_IPV4", true),
		WebAddr:         strings.TrimSpace(getEnv("WEB_ADDR", ":8080")),
		LibraryPath:     strings.TrimSpace(getEnv("LIBRARY_PATH", "carcrafter_library.json")),
		LibraryCapacity: getEnvInt("LIBRARY_CAPACITY", 10),
		RequestTimeout:  time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 180)) * time.Second,
		HTTPTimeout:     time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 180)) * time.Second,
	}

	cfg.OpenAIAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if cfg.OpenAIAPIKey == "" {
		return Config{}, errors.New("OPENAI_API_KEY is required")
	}

	if cfg.LibraryCapacity < 1 {
		cfg.LibraryCapacity = 10
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 180 * time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 180 * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
