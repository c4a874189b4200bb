package service

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	Provider struct {
		APIBase string
		APIKey  string
	}

	Import struct {
		Timeout    time.Duration
		MaxReviews int
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/gearshelf.db"),
	}

	// Structured-data provider. The key may legitimately be empty: the
	// provider adapter reports its absence as a configuration error per
	// call instead of blocking page-adapter-only deployments at startup.
	config.Provider.APIBase = getEnv("PROVIDER_API_BASE", "https://api.asindataapi.com/request")
	config.Provider.APIKey = getEnv("PROVIDER_API_KEY", "")

	// Import
	timeout := getEnv("IMPORT_TIMEOUT_SECONDS", "20")
	if seconds, err := strconv.Atoi(timeout); err == nil && seconds > 0 {
		config.Import.Timeout = time.Duration(seconds) * time.Second
	} else {
		config.Import.Timeout = 20 * time.Second
	}

	maxReviews := getEnv("IMPORT_MAX_REVIEWS", "50")
	if n, err := strconv.Atoi(maxReviews); err == nil && n > 0 {
		config.Import.MaxReviews = n
	} else {
		config.Import.MaxReviews = 50
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
