package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/openclinic/clinic-ops/internal/triage"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	AdminJWTSecret     string
	CORSAllowedOrigins []string

	// Triage engine configuration. SLA days and the normal-phrase list are
	// clinic policy, adjustable without a code change; the catalog path is
	// optional and falls back to the built-in rule table when empty.
	SLALabDays           int
	SLAXrayDays          int
	SLAUltrasoundDays    int
	CatalogPath          string
	NormalImagingPhrases []string

	// Dashboard rollup cache.
	KPICacheTTL time.Duration

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),

		SLALabDays:           getEnvAsInt("SLA_LAB_DAYS", 7),
		SLAXrayDays:          getEnvAsInt("SLA_XRAY_DAYS", 3),
		SLAUltrasoundDays:    getEnvAsInt("SLA_ULTRASOUND_DAYS", 5),
		CatalogPath:          getEnv("TRIAGE_CATALOG_PATH", ""),
		NormalImagingPhrases: getEnvAsList("NORMAL_IMAGING_PHRASES", triage.DefaultNormalPhrases()),

		KPICacheTTL: getEnvAsDuration("KPI_CACHE_TTL", 1*time.Minute),

		HTTPReadTimeout:  getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		HTTPWriteTimeout: getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
	}
}

// SLATable assembles the per-kind SLA configuration for the triage engine.
func (c *Config) SLATable() triage.SLATable {
	return triage.SLATable{
		triage.KindLab:        c.SLALabDays,
		triage.KindXray:       c.SLAXrayDays,
		triage.KindUltrasound: c.SLAUltrasoundDays,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, trimming
// whitespace and dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
