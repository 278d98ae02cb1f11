package config

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// insecureSecrets are defaults that must never reach a non-development
// deployment.
var insecureSecrets = map[string]bool{
	"supersecretkey": true,
	"changeme":       true,
	"":               true,
}

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	BcryptCost    int           `yaml:"bcrypt_cost"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("DIRECTORY_ADDR", ":8080"),
		JWTSecret:     getEnv("DIRECTORY_JWT_SECRET", "supersecretkey"),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("DIRECTORY_DATABASE_PATH", "directory.db"),
		TokenDuration: 24 * time.Hour,
		BcryptCost:    12,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that are unsafe to run outside of
// development (insecure JWT secret) or outright broken (bad bcrypt cost).
func (c *Config) Validate() error {
	if insecureSecrets[c.JWTSecret] && os.Getenv("DIRECTORY_ENV") != "development" {
		return fmt.Errorf("jwt_secret is insecure; set DIRECTORY_JWT_SECRET or run with DIRECTORY_ENV=development")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
