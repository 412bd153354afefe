// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// JWTConfig provides JWT validation settings for the admin middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// GeocodeConfig provides settings for the Nominatim geocoding client.
type GeocodeConfig interface {
	GetNominatimURL() string
	GetNominatimUserAgent() string
	GetGeocodeTimeout() time.Duration
	GetRedisURL() string
}

// PricingConfig provides settings for the pricing engine.
type PricingConfig interface {
	GetPricingConfigPath() string
	GetOriginLat() float64
	GetOriginLon() float64
}

// CatalogConfig provides settings for the lot catalog.
type CatalogConfig interface {
	GetCatalogFilePath() string
}

// QuoteConfig provides settings for quote assembly.
type QuoteConfig interface {
	GetQuoteValidUntil() time.Time
	GetAppBaseURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	CORSAllowAll       bool
	CORSOrigins        []string
	CORSAllowCreds     bool
	JWTAccessSecret    string
	AppBaseURL         string
	NominatimURL       string
	NominatimUserAgent string
	GeocodeTimeout     time.Duration
	RedisURL           string
	PricingConfigPath  string
	OriginLat          float64
	OriginLon          float64
	CatalogFilePath    string
	QuoteValidUntil    time.Time
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// GeocodeConfig implementation
func (c *Config) GetNominatimURL() string         { return c.NominatimURL }
func (c *Config) GetNominatimUserAgent() string   { return c.NominatimUserAgent }
func (c *Config) GetGeocodeTimeout() time.Duration { return c.GeocodeTimeout }
func (c *Config) GetRedisURL() string             { return c.RedisURL }

// PricingConfig implementation
func (c *Config) GetPricingConfigPath() string { return c.PricingConfigPath }
func (c *Config) GetOriginLat() float64        { return c.OriginLat }
func (c *Config) GetOriginLon() float64        { return c.OriginLon }

// CatalogConfig implementation
func (c *Config) GetCatalogFilePath() string { return c.CatalogFilePath }

// QuoteConfig implementation
func (c *Config) GetQuoteValidUntil() time.Time { return c.QuoteValidUntil }
func (c *Config) GetAppBaseURL() string         { return c.AppBaseURL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	validUntil, err := time.Parse("2006-01-02", getEnv("QUOTE_VALID_UNTIL", "2025-12-08"))
	if err != nil {
		return nil, fmt.Errorf("QUOTE_VALID_UNTIL must be YYYY-MM-DD: %w", err)
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		CORSAllowCreds:     strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		JWTAccessSecret:    getEnv("JWT_ACCESS_SECRET", ""),
		AppBaseURL:         getEnv("APP_BASE_URL", "http://localhost:4200"),
		NominatimURL:       getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
		NominatimUserAgent: getEnv("NOMINATIM_USER_AGENT", "ShipQuotePro/1.0"),
		GeocodeTimeout:     mustDuration(getEnv("GEOCODE_TIMEOUT", "5s")),
		RedisURL:           getEnv("REDIS_URL", ""),
		PricingConfigPath:  getEnv("PRICING_CONFIG", ""),
		OriginLat:          mustFloat(getEnv("ORIGIN_LAT", "48.8566")),
		OriginLon:          mustFloat(getEnv("ORIGIN_LON", "2.3522")),
		CatalogFilePath:    getEnv("CATALOG_FILE", ""),
		QuoteValidUntil:    validUntil,
	}

	if cfg.GeocodeTimeout <= 0 {
		return nil, fmt.Errorf("GEOCODE_TIMEOUT must be a positive duration")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
