package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	GinMode           string
	TesseractDataPath string
	OCRLanguage       string
	MaxFileSize       int64
	LogLevel          string
	TraceExtraction   bool
	IncludeRawText    bool
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence over it.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "release"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		OCRLanguage:       getEnv("OCR_LANGUAGE", "por"),
		MaxFileSize:       int64(getEnvAsInt("MAX_FILE_SIZE_MB", 10)) << 20,
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		TraceExtraction:   getEnvAsBool("TRACE_EXTRACTION", false),
		IncludeRawText:    getEnvAsBool("INCLUDE_RAW_TEXT", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
