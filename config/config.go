package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime knob for the service. Values come from the
// environment; a local .env file is honored when present.
type Config struct {
	ServerPort    string
	LogLevel      string
	MaxFileSize   int64
	BatchWorkers  int
	ThrottleDelay time.Duration
	BatchTimeout  time.Duration
	FetchTimeout  time.Duration

	// RedisURL selects the dedup/cache backend. Empty means the in-memory
	// cache.
	RedisURL string
	CacheTTL time.Duration

	// EnableOCR turns on the image-OCR fallback for scanned PDFs. Off by
	// default: it needs a tesseract install on the host.
	EnableOCR         bool
	TesseractDataPath string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MaxFileSize:       getEnvInt64("MAX_FILE_SIZE", 50*1024*1024),
		BatchWorkers:      getEnvInt("BATCH_WORKERS", 10),
		ThrottleDelay:     getEnvDuration("THROTTLE_DELAY", 100*time.Millisecond),
		BatchTimeout:      getEnvDuration("BATCH_TIMEOUT", 5*time.Minute),
		FetchTimeout:      getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		RedisURL:          getEnv("REDIS_URL", ""),
		CacheTTL:          getEnvDuration("CACHE_TTL", 24*time.Hour),
		EnableOCR:         getEnvBool("ENABLE_OCR", false),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/4.00/tessdata"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
