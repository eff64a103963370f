package config

import (
	"os"
	"strings"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr string

	// Booking platform
	SquareAccessToken string
	SquareEnvironment string
	SquareVersion     string

	// Spreadsheet lead tracker
	GoogleSheetID       string
	GoogleServiceEmail  string
	GooglePrivateKeyPEM string
	GoogleSheetsScope   string

	// Catalog refresher
	CatalogRefreshInterval time.Duration
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),

		SquareAccessToken: getEnv("SQUARE_ACCESS_TOKEN", ""),
		SquareEnvironment: getEnv("SQUARE_ENVIRONMENT", "sandbox"),
		SquareVersion:     getEnv("SQUARE_VERSION", "2024-01-18"),

		GoogleSheetID:      strings.TrimSpace(getEnv("GOOGLE_SHEET_ID", "")),
		GoogleServiceEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		// Deployment env UIs flatten the PEM to one line; restore the
		// newlines before parsing.
		GooglePrivateKeyPEM: strings.ReplaceAll(getEnv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n"),
		GoogleSheetsScope:   getEnv("GOOGLE_SHEETS_SCOPE", "https://www.googleapis.com/auth/spreadsheets.readonly"),

		CatalogRefreshInterval: getEnvDuration("CATALOG_REFRESH_INTERVAL", 15*time.Minute),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
