// Package configs provides application configuration loaded from environment variables.
// All configuration is externalized via environment variables for 12-factor app compliance.
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// DBDSN is the Postgres connection string.
	DBDSN string

	// Tendata contains remote trade-data API settings.
	Tendata TendataConfig

	// Extract contains batch extraction settings.
	Extract ExtractConfig

	// Scan contains coverage-scan row caps.
	Scan ScanConfig

	// Clean contains cleaning-engine defaults.
	Clean CleanConfig
}

// TendataConfig holds remote API connection settings.
type TendataConfig struct {
	// BaseURL is the API root (e.g., "https://open-api.tendata.com").
	BaseURL string

	// APIKey is the static key exchanged for short-lived access tokens.
	APIKey string
}

// ExtractConfig holds settings for the chunked batch extractor.
type ExtractConfig struct {
	// ChunkDays is the day span of one extraction window.
	ChunkDays int

	// PageSize is the rows-per-page for bulk pulls.
	PageSize int

	// PagesPerSecond bounds the page-fetch rate against the source API.
	PagesPerSecond float64

	// LoadBatch is the id-cursor page size for local bulk reads.
	LoadBatch int
}

// ScanConfig holds coverage-scan sampling caps.
type ScanConfig struct {
	// RowLimit is the standard sample cap per scan.
	RowLimit int

	// HeavyRowLimit replaces RowLimit for high-volume origins.
	HeavyRowLimit int

	// HeavyOrigins lists origin codes whose partitions need the
	// reduced cap (comma-separated in env).
	HeavyOrigins []string
}

// CleanConfig holds cleaning defaults.
type CleanConfig struct {
	// MinUnitPrice is the price-outlier floor in USD per unit.
	MinUnitPrice float64
}

// getDatabaseDSN constructs the Postgres DSN from environment variables.
func getDatabaseDSN() string {
	dbUser := getEnv("POSTGRES_USER", "postgres")
	dbPassword := getEnv("POSTGRES_PASSWORD", "postgres")
	dbHost := getEnv("POSTGRES_HOST", "localhost")
	dbPort := getEnv("POSTGRES_PORT", "5432")
	dbName := getEnv("POSTGRES_DB", "timberintel")
	sslMode := getEnv("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbHost, dbPort, dbUser, dbPassword, dbName, sslMode,
	)
}

// AppLoad loads all application configuration from environment variables.
// It attempts to load a .env file first (for local development).
// Call this once at application startup.
func AppLoad() *AppConfig {
	_ = godotenv.Load() // Ignore error - .env is optional

	return &AppConfig{
		DBDSN: getDatabaseDSN(),
		Tendata: TendataConfig{
			BaseURL: getEnv("TENDATA_BASE_URL", "https://open-api.tendata.com"),
			APIKey:  getEnv("TENDATA_API_KEY", ""),
		},
		Extract: ExtractConfig{
			ChunkDays:      getEnvInt("EXTRACT_CHUNK_DAYS", 7),
			PageSize:       getEnvInt("EXTRACT_PAGE_SIZE", 50),
			PagesPerSecond: getEnvFloat("EXTRACT_PAGES_PER_SECOND", 3),
			LoadBatch:      getEnvInt("EXTRACT_LOAD_BATCH", 5000),
		},
		Scan: ScanConfig{
			RowLimit:      getEnvInt("SCAN_ROW_LIMIT", 100000),
			HeavyRowLimit: getEnvInt("SCAN_HEAVY_ROW_LIMIT", 15000),
			HeavyOrigins:  getEnvList("SCAN_HEAVY_ORIGINS", "IND"),
		},
		Clean: CleanConfig{
			MinUnitPrice: getEnvFloat("CLEAN_MIN_UNIT_PRICE", 5.0),
		},
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvFloat returns the environment variable as float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList returns a comma-separated environment variable as a slice.
func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
