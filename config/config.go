// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Race sheet. Any Google Sheets URL; it is resolved to its CSV export.
	SheetURL     string
	FetchTimeout time.Duration
	CacheTTL     time.Duration
	Timezone     string
	Location     *time.Location

	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret for operator tokens.
	JWTSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()
	setDefaults(v)

	cfg := fromViper(v)
	if err := cfg.validate(); err != nil {
		log.Fatal("config: ", err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("FETCH_TIMEOUT", "15s")
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("DB_USER", "racecal")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "racecal")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", false)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		SheetURL:     strings.TrimSpace(v.GetString("GOOGLE_SHEET_URL")),
		FetchTimeout: v.GetDuration("FETCH_TIMEOUT"),
		CacheTTL:     v.GetDuration("CACHE_TTL"),
		Timezone:     v.GetString("TIMEZONE"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		DBUser:       v.GetString("DB_USER"),
		DBPass:       v.GetString("DB_PASS"),
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBName:       v.GetString("DB_NAME"),
		DBSSLMode:    v.GetString("DB_SSLMODE"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		Debug:        v.GetBool("DEBUG"),
		Port:         v.GetString("PORT"),
		TLSDomains:   splitTrimmed(v.GetString("TLS_DOMAINS")),
	}
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// validate checks required settings and resolves Location.
func (c *Config) validate() error {
	if c.SheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL must be set")
	}
	if c.DatabaseURL == "" && c.DBPass == "" {
		return fmt.Errorf("DATABASE_URL or DB_PASS must be set")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	c.Location = loc
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
