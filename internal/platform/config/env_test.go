package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"PORTFOLIO_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PORTFOLIO_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnvSkipsMissingFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.env")
	if err := LoadDotEnv("", missing); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORTFOLIO_TEST_DOTENV_NEW=from-file\nPORTFOLIO_TEST_DOTENV_SET=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("PORTFOLIO_TEST_DOTENV_SET", "from-env")
	t.Setenv("PORTFOLIO_TEST_DOTENV_NEW", "")
	os.Unsetenv("PORTFOLIO_TEST_DOTENV_NEW")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("PORTFOLIO_TEST_DOTENV_NEW"); got != "from-file" {
		t.Fatalf("new variable = %q, want %q", got, "from-file")
	}
	if got := os.Getenv("PORTFOLIO_TEST_DOTENV_SET"); got != "from-env" {
		t.Fatalf("existing variable = %q, want %q", got, "from-env")
	}
}
