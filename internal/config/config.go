package config

import (
	"os"
	"strconv"
)

// PageConfig holds settings rendered into the hosting page.
type PageConfig struct {
	Title          string
	SheetDefault   string
	UploadEndpoint string
}

// StaticConfig describes where the WASM bundle and its loader are served from.
type StaticConfig struct {
	Dir    string
	Bundle string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	Env                string
	Port               string
	MetricsEnabled     bool
	ShutdownTimeoutSec int
	Page               PageConfig
	Static             StaticConfig
}

// IsDevelopment reports whether the app runs with development defaults.
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the .env file.
func Load() *AppConfig {
	return &AppConfig{
		Env:                getEnv("APP_ENV", "production"),
		Port:               getEnv("PORT", "9090"),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10),
		Page: PageConfig{
			Title:          getEnv("PAGE_TITLE", "Upload Your Schedule"),
			SheetDefault:   getEnv("SHEET_DEFAULT", "GENERAL SCHEDULE"),
			UploadEndpoint: getEnv("UPLOAD_ENDPOINT", "/upload"),
		},
		Static: StaticConfig{
			Dir:    getEnv("STATIC_DIR", "./static"),
			Bundle: getEnv("WASM_BUNDLE", "main.wasm"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
