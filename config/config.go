// Package config holds the runtime configuration for the scraper.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the scraper needs from the environment.
type Config struct {
	BaseURL               string        // upstream site root
	OutputDir             string        // root for CSV and transcript files
	Timeout               time.Duration // per-fetch timeout
	FetchDelay            time.Duration // minimum spacing between fetches, 0 disables
	AllowPartial          bool          // degrade to tables-only record when embedded state fails
	TranscriptConcurrency int
	BrowserFallback       bool // render script-built pages through chromedp
	RedisAddr             string
	Port                  string // HTTP mode only
	LogLevel              string
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() Config {
	godotenv.Load()

	return Config{
		BaseURL:               getEnv("SCREENER_BASE_URL", "https://www.screener.in"),
		OutputDir:             getEnv("SCREENER_OUTPUT_DIR", defaultOutputDir()),
		Timeout:               time.Duration(getEnvInt("SCREENER_TIMEOUT", 30)) * time.Second,
		FetchDelay:            getEnvDuration("SCREENER_FETCH_DELAY", 0),
		AllowPartial:          getEnvBool("SCREENER_ALLOW_PARTIAL", false),
		TranscriptConcurrency: getEnvInt("SCREENER_TRANSCRIPT_CONCURRENCY", 3),
		BrowserFallback:       getEnvBool("SCREENER_BROWSER_FALLBACK", false),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		Port:                  getEnv("PORT", "8000"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
	}
}

func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "StockData"
	}
	return filepath.Join(home, "Documents", "StockData")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
