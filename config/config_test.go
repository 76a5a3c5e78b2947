package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "GIN_MODE", "TESSDATA_PREFIX", "OCR_LANGUAGE",
		"MAX_FILE_SIZE_MB", "LOG_LEVEL", "TRACE_EXTRACTION", "INCLUDE_RAW_TEXT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "por", cfg.OCRLanguage)
	assert.Equal(t, int64(10<<20), cfg.MaxFileSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.TraceExtraction)
	assert.False(t, cfg.IncludeRawText)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OCR_LANGUAGE", "por+eng")
	t.Setenv("MAX_FILE_SIZE_MB", "2")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TRACE_EXTRACTION", "true")
	t.Setenv("INCLUDE_RAW_TEXT", "1")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "por+eng", cfg.OCRLanguage)
	assert.Equal(t, int64(2<<20), cfg.MaxFileSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.TraceExtraction)
	assert.True(t, cfg.IncludeRawText)
}

func TestLoadConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE_MB", "lots")
	t.Setenv("TRACE_EXTRACTION", "maybe")

	cfg := LoadConfig()

	assert.Equal(t, int64(10<<20), cfg.MaxFileSize)
	assert.False(t, cfg.TraceExtraction)
}
