package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Window float64 `env:"CLOSERLOOK_TEST_WINDOW" envDefault:"300"`
}

type prefixedTestConfig struct {
	Locale string `env:"LOCALE" envDefault:"en-US"`
	Seed   int64  `env:"SEED"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Window != 300 {
		t.Fatalf("window = %v, want 300", cfg.Window)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("CLOSERLOOK_TEST_WINDOW", "not-a-number")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithPrefix(t *testing.T) {
	t.Setenv("CLOSERLOOK_TEST_SEED", "42")
	t.Setenv("SEED", "7")

	var cfg prefixedTestConfig
	if err := ParseEnvWithPrefix(&cfg, "CLOSERLOOK_TEST_"); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Seed != 42 {
		t.Fatalf("seed = %d, want 42", cfg.Seed)
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("locale = %q, want default en-US", cfg.Locale)
	}
}
