package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	OCR      OCRConfig
}

// DatabaseConfig holds history-store configuration
type DatabaseConfig struct {
	Path string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Pdftoppm         string
	Tesseract        string
	TesseractLang    string
	TessdataDir      string
	DPI              int
	MaxWorkers       int
	RecognizeTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("EXPENSES_DB_PATH", "./expenses.db"),
		},
		OCR: OCRConfig{
			Pdftoppm:         getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:        getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang:    getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:      getEnv("TESSDATA_PREFIX", ""),
			DPI:              getEnvAsInt("OCR_DPI", 108),
			MaxWorkers:       getEnvAsInt("OCR_MAX_WORKERS", 2),
			RecognizeTimeout: getEnvAsDuration("OCR_RECOGNIZE_TIMEOUT", 2*time.Minute),
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return NewAppError("CONFIG_ERROR", "EXPENSES_DB_PATH is required", ErrInvalidInput)
	}
	if c.OCR.MaxWorkers <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_MAX_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
