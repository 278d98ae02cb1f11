package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/kfglabs/directory/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Ensure environment does not interfere
	_ = os.Unsetenv("DIRECTORY_ADDR")
	_ = os.Unsetenv("DIRECTORY_JWT_SECRET")
	_ = os.Unsetenv("DIRECTORY_DATABASE_PATH")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error for empty path: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":8080")
	}
	if cfg.DatabasePath != "directory.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "directory.db")
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("unexpected APITimeout: got %v want %v", cfg.APITimeout, 15*time.Second)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Fatalf("unexpected TokenDuration: got %v want %v", cfg.TokenDuration, 24*time.Hour)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("unexpected BcryptCost: got %d want 12", cfg.BcryptCost)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DIRECTORY_ADDR", ":9999")
	t.Setenv("DIRECTORY_JWT_SECRET", "envkey")
	t.Setenv("DIRECTORY_DATABASE_PATH", "env.db")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Addr != ":9999" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":9999")
	}
	if cfg.JWTSecret != "envkey" {
		t.Fatalf("unexpected JWTSecret: got %q want %q", cfg.JWTSecret, "envkey")
	}
	if cfg.DatabasePath != "env.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "env.db")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	f, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	f.Close()

	content := []byte("addr: \":9090\"\njwt_secret: \"filekey\"\ntimeout: \"30s\"\ndatabase_path: \"test.db\"\ntoken_duration: \"2h\"\nbcrypt_cost: 10\n")
	if err := os.WriteFile(f.Name(), content, 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := config.LoadConfig(f.Name())
	if err != nil {
		t.Fatalf("LoadConfig returned error for file: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":9090")
	}
	if cfg.JWTSecret != "filekey" {
		t.Fatalf("unexpected JWTSecret: got %q want %q", cfg.JWTSecret, "filekey")
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("unexpected APITimeout: got %v want %v", cfg.APITimeout, 30*time.Second)
	}
	if cfg.TokenDuration != 2*time.Hour {
		t.Fatalf("unexpected TokenDuration: got %v want %v", cfg.TokenDuration, 2*time.Hour)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("unexpected BcryptCost: got %d want 10", cfg.BcryptCost)
	}
}

func TestLoadConfig_BadPath(t *testing.T) {
	if _, err := config.LoadConfig("/path/that/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent path, got nil")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	f, err := os.CreateTemp("", "bad-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	f.Close()

	if err := os.WriteFile(f.Name(), []byte("::: not yaml :::"), 0o600); err != nil {
		t.Fatalf("failed to write bad yaml: %v", err)
	}

	if _, err := config.LoadConfig(f.Name()); err == nil {
		t.Fatalf("expected YAML decode error, got nil")
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	t.Setenv("DIRECTORY_ENV", "production")

	cfg := &config.Config{
		Addr:          ":8080",
		JWTSecret:     "supersecretkey",
		APITimeout:    5 * time.Second,
		DatabasePath:  "directory.db",
		TokenDuration: 1 * time.Hour,
		BcryptCost:    12,
	}

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT in non-development env")
	}
}

func TestValidate_InsecureJWT_AllowsDevelopment(t *testing.T) {
	t.Setenv("DIRECTORY_ENV", "development")

	cfg := &config.Config{
		Addr:          ":8080",
		JWTSecret:     "supersecretkey",
		APITimeout:    5 * time.Second,
		DatabasePath:  "directory.db",
		TokenDuration: 1 * time.Hour,
		BcryptCost:    12,
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate_BcryptCostOutOfRange(t *testing.T) {
	t.Setenv("DIRECTORY_ENV", "development")

	cfg := &config.Config{
		Addr:          ":8080",
		JWTSecret:     "strongsecret",
		APITimeout:    5 * time.Second,
		DatabasePath:  "directory.db",
		TokenDuration: 1 * time.Hour,
		BcryptCost:    99,
	}

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for out-of-range bcrypt cost")
	}
}

func TestValidate_NonPositiveTokenDuration(t *testing.T) {
	cfg := &config.Config{
		Addr:          ":8080",
		JWTSecret:     "strongsecret",
		APITimeout:    5 * time.Second,
		DatabasePath:  "directory.db",
		TokenDuration: 0,
		BcryptCost:    12,
	}

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for zero token duration")
	}
}
