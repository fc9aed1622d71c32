// Package config adds environment-variable overrides for the CLI and
// index/cache layers. The parser's own Options remains the only ambient
// configuration for a bare Parse call; this package only affects the CLI
// and cache/index surfaces built around it.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/oxhq/cppdecl/internal/options"
)

// Config holds environment-derived settings for the CLI and cache/index
// layers.
type Config struct {
	CacheDSN       string
	CacheTTL       time.Duration
	Strict         bool
	GNUAttributes  bool
	MSVCAttributes bool
}

// Load reads configuration from the environment, first loading a local
// .env file if present (silently ignored if absent).
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		CacheDSN:       os.Getenv("CPPDECL_CACHE_DSN"),
		CacheTTL:       5 * time.Minute,
		Strict:         boolEnv("CPPDECL_STRICT", false),
		GNUAttributes:  boolEnv("CPPDECL_GNU_ATTRIBUTES", true),
		MSVCAttributes: boolEnv("CPPDECL_MSVC_ATTRIBUTES", false),
	}
	if cfg.CacheDSN == "" {
		cfg.CacheDSN = "cppdecl-index.db"
	}
	if ttlStr := os.Getenv("CPPDECL_CACHE_TTL"); ttlStr != "" {
		if secs, err := strconv.Atoi(ttlStr); err == nil && secs > 0 {
			cfg.CacheTTL = time.Duration(secs) * time.Second
		}
	}
	return cfg
}

func boolEnv(name string, def bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// ParseOptions returns the parser Options the CLI passes to declparse.Parse,
// derived from the process environment via Load.
func ParseOptions() options.Options {
	cfg := Load()
	opts := options.Default()
	opts.Strict = cfg.Strict
	opts.GNUAttributes = cfg.GNUAttributes
	opts.MSVCAttributes = cfg.MSVCAttributes
	return opts
}
