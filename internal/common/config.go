package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Text   TextConfig
	Cache  CacheConfig
	Auth   AuthConfig
	Watch  WatchConfig
	Engine EngineConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr       string
	AllowedOrigins []string
	MaxUploadBytes int64
	RequestTimeout time.Duration
}

// TextConfig holds text-layer acquisition configuration
type TextConfig struct {
	Backend   string // "pdftotext" or "docconv"
	Pdftotext string
	Timeout   time.Duration
	MaxBytes  int64
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// AuthConfig holds API authentication configuration
type AuthConfig struct {
	JWTSecret string
}

// WatchConfig holds folder watcher configuration
type WatchConfig struct {
	Dir       string
	Debounce  time.Duration
	Workers   int
	QueueSize int
}

// EngineConfig holds extraction engine configuration
type EngineConfig struct {
	FieldsFile string
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
			MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", 20<<20),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 60*time.Second),
		},
		Text: TextConfig{
			Backend:   getEnv("TEXT_BACKEND", "pdftotext"),
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Timeout:   getEnvAsDuration("TEXT_TIMEOUT", 30*time.Second),
			MaxBytes:  getEnvAsInt64("TEXT_MAX_BYTES", 20<<20),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      getEnvAsDuration("CACHE_TTL", 24*time.Hour),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Watch: WatchConfig{
			Dir:       getEnv("WATCH_DIR", ""),
			Debounce:  getEnvAsDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
			Workers:   getEnvAsInt("WATCH_WORKERS", 2),
			QueueSize: getEnvAsInt("WATCH_QUEUE_SIZE", 64),
		},
		Engine: EngineConfig{
			FieldsFile: getEnv("ENGINE_FIELDS_FILE", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Text.Backend {
	case "pdftotext", "docconv":
	default:
		return NewAppError(CodeConfig, "TEXT_BACKEND must be pdftotext or docconv", ErrInvalidInput)
	}
	if c.Text.MaxBytes <= 0 {
		return NewAppError(CodeConfig, "TEXT_MAX_BYTES must be positive", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError(CodeConfig, "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Watch.Workers <= 0 {
		return NewAppError(CodeConfig, "WATCH_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
