package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	BaseURL          string
	RecentIPOPath    string
	OutputFile       string
	ProcessedFile    string
	LogLevel         string
	DatabaseURL      string
	EnrichProfiles   bool
	HTTPTimeoutSecs  string
	PageDelaySecs    string
	MaxFetchAttempts string
}

// ScraperSettings holds the tunables handed to the fetcher and the scrape job.
// Everything that was a module-level constant in earlier iterations lives here
// so callers construct components with explicit configuration.
type ScraperSettings struct {
	BaseURL          string        `json:"base_url"`
	RecentIPOPath    string        `json:"recent_ipo_path"`
	HTTPTimeout      time.Duration `json:"http_timeout"`
	MaxFetchAttempts int           `json:"max_fetch_attempts"`
	BackoffUnit      time.Duration `json:"backoff_unit"`
	PageDelay        time.Duration `json:"page_delay"`
}

// DefaultScraperSettings returns production defaults for scraping screener.in.
func DefaultScraperSettings() *ScraperSettings {
	return &ScraperSettings{
		BaseURL:          "https://www.screener.in",
		RecentIPOPath:    "/ipo/recent/",
		HTTPTimeout:      10 * time.Second,
		MaxFetchAttempts: 3,
		BackoffUnit:      1 * time.Second,
		PageDelay:        2 * time.Second, // Be nice to the server between pages
	}
}

// ScraperSettings builds scrape settings from the loaded environment values,
// falling back to defaults for anything unset or unparseable.
func (c *Config) ScraperSettings() *ScraperSettings {
	settings := DefaultScraperSettings()

	if c.BaseURL != "" {
		settings.BaseURL = c.BaseURL
	}
	if c.RecentIPOPath != "" {
		settings.RecentIPOPath = c.RecentIPOPath
	}
	if secs := parsePositiveInt(c.HTTPTimeoutSecs, "HTTP_TIMEOUT_SECONDS"); secs > 0 {
		settings.HTTPTimeout = time.Duration(secs) * time.Second
	}
	if secs := parsePositiveInt(c.PageDelaySecs, "PAGE_DELAY_SECONDS"); secs >= 0 {
		settings.PageDelay = time.Duration(secs) * time.Second
	}
	if attempts := parsePositiveInt(c.MaxFetchAttempts, "MAX_FETCH_ATTEMPTS"); attempts > 0 {
		settings.MaxFetchAttempts = attempts
	}

	return settings
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		BaseURL:          getEnv("SCREENER_BASE_URL", ""),
		RecentIPOPath:    getEnv("RECENT_IPO_PATH", ""),
		OutputFile:       getEnv("OUTPUT_FILE", "ipo_data.xlsx"),
		ProcessedFile:    getEnv("PROCESSED_FILE", "processed_ipos.json"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		EnrichProfiles:   getEnv("ENRICH_PROFILES", "false") == "true",
		HTTPTimeoutSecs:  getEnv("HTTP_TIMEOUT_SECONDS", ""),
		PageDelaySecs:    getEnv("PAGE_DELAY_SECONDS", ""),
		MaxFetchAttempts: getEnv("MAX_FETCH_ATTEMPTS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parsePositiveInt(raw, name string) int {
	if raw == "" {
		return -1
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		logrus.Warnf("Invalid %s value: %s, using default", name, raw)
		return -1
	}
	return value
}
