package config

import (
	"os"
	"testing"
	"time"
)

func clearConfigEnvVars() {
	for _, k := range []string{
		"CPPDECL_CACHE_DSN",
		"CPPDECL_CACHE_TTL",
		"CPPDECL_STRICT",
		"CPPDECL_GNU_ATTRIBUTES",
		"CPPDECL_MSVC_ATTRIBUTES",
	} {
		os.Unsetenv(k)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	cfg := Load()

	if cfg.CacheDSN != "cppdecl-index.db" {
		t.Errorf("expected default CacheDSN 'cppdecl-index.db', got %q", cfg.CacheDSN)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("expected default CacheTTL 5m, got %v", cfg.CacheTTL)
	}
	if cfg.Strict {
		t.Error("expected Strict to default to false")
	}
	if !cfg.GNUAttributes {
		t.Error("expected GNUAttributes to default to true")
	}
	if cfg.MSVCAttributes {
		t.Error("expected MSVCAttributes to default to false")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("CPPDECL_CACHE_DSN", "libsql://example.turso.io")
	os.Setenv("CPPDECL_CACHE_TTL", "30")
	os.Setenv("CPPDECL_STRICT", "true")
	os.Setenv("CPPDECL_GNU_ATTRIBUTES", "false")
	os.Setenv("CPPDECL_MSVC_ATTRIBUTES", "true")

	cfg := Load()

	if cfg.CacheDSN != "libsql://example.turso.io" {
		t.Errorf("expected CacheDSN override, got %q", cfg.CacheDSN)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected CacheTTL override 30s, got %v", cfg.CacheTTL)
	}
	if !cfg.Strict {
		t.Error("expected Strict override to take effect")
	}
	if cfg.GNUAttributes {
		t.Error("expected GNUAttributes override to take effect")
	}
	if !cfg.MSVCAttributes {
		t.Error("expected MSVCAttributes override to take effect")
	}
}

func TestLoad_InvalidTTLIgnored(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("CPPDECL_CACHE_TTL", "not-a-number")
	cfg := Load()
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("expected invalid CacheTTL to fall back to default, got %v", cfg.CacheTTL)
	}
}

func TestParseOptions_ReflectsOverrides(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("CPPDECL_STRICT", "true")
	os.Setenv("CPPDECL_MSVC_ATTRIBUTES", "true")

	opts := ParseOptions()
	if !opts.Strict {
		t.Error("expected ParseOptions to reflect CPPDECL_STRICT")
	}
	if !opts.MSVCAttributes {
		t.Error("expected ParseOptions to reflect CPPDECL_MSVC_ATTRIBUTES")
	}
}
