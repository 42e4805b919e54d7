package common

import (
	"os"
	"strconv"
	"time"

	"github.com/invtrack/receipt-scan/constants"
)

// Config holds all application configuration
type Config struct {
	OCR     OCRConfig
	LLM     LLMConfig
	Scanner ScannerConfig
	Catalog CatalogConfig
}

// OCRConfig holds document-analysis collaborator configuration
type OCRConfig struct {
	Endpoint string
	APIKey   string
}

// LLMConfig holds generative-model collaborator configuration
type LLMConfig struct {
	Provider    string // "openai" | "gemini"
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// ScannerConfig holds extraction policy knobs
type ScannerConfig struct {
	MaxProducts         int
	ReviewThreshold     float64
	UnknownFormatCap    float64
	SoftFieldConfidence float64
	FallbackConfidence  float64
	RawLineConfidence   float64
	EnableFallback      bool
}

// CatalogConfig holds the optional product-catalog store configuration
type CatalogConfig struct {
	DSN            string // postgres URL or sqlite file path; empty disables enrichment
	MatchThreshold float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Endpoint: getEnv("OCR_ENDPOINT", ""),
			APIKey:   getEnv("OCR_API_KEY", ""),
		},
		LLM: LLMConfig{
			Provider:    getEnv("LLM_PROVIDER", "openai"),
			Model:       getEnv("LLM_MODEL", ""),
			APIKey:      getEnv("LLM_API_KEY", ""),
			BaseURL:     getEnv("LLM_BASE_URL", ""),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
		},
		Scanner: ScannerConfig{
			MaxProducts:         getEnvAsInt("SCAN_MAX_PRODUCTS", constants.DefaultMaxProducts),
			ReviewThreshold:     getEnvAsFloat64("SCAN_REVIEW_THRESHOLD", constants.ReviewThreshold),
			UnknownFormatCap:    getEnvAsFloat64("SCAN_UNKNOWN_FORMAT_CAP", constants.UnknownFormatCap),
			SoftFieldConfidence: getEnvAsFloat64("SCAN_SOFT_FIELD_CONFIDENCE", constants.SoftFieldConfidence),
			FallbackConfidence:  getEnvAsFloat64("SCAN_FALLBACK_CONFIDENCE", constants.FallbackConfidence),
			RawLineConfidence:   getEnvAsFloat64("SCAN_RAW_LINE_CONFIDENCE", constants.RawLineConfidence),
			EnableFallback:      getEnvAsBool("SCAN_ENABLE_FALLBACK", true),
		},
		Catalog: CatalogConfig{
			DSN:            getEnv("CATALOG_DSN", ""),
			MatchThreshold: getEnvAsFloat64("CATALOG_MATCH_THRESHOLD", constants.CatalogMatchThreshold),
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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

// Validate validates the loaded configuration for a full scan run.
func (c *Config) Validate() error {
	if c.OCR.Endpoint == "" {
		return ConfigError("OCR_ENDPOINT is required", ErrInvalidInput)
	}
	if c.OCR.APIKey == "" {
		return ConfigError("OCR_API_KEY is required", ErrInvalidInput)
	}
	if c.Scanner.EnableFallback && c.LLM.APIKey == "" {
		return ConfigError("LLM_API_KEY is required when the fallback tier is enabled", ErrInvalidInput)
	}
	return nil
}
