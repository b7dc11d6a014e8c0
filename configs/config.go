package configs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DefaultEnvFile = ".env"

	EnvURL  = "SUPABASE_URL"
	EnvKey  = "SUPABASE_KEY"
	envFile = "ENV_FILE"
)

var (
	ErrMissingValue = errors.New("configs: missing value")
	ErrInvalidURL   = errors.New("configs: invalid url")
	ErrInvalidKey   = errors.New("configs: invalid key")
)

type Config struct {
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`
	Schema      string `env:"SUPABASE_SCHEMA, default=public"`
	DatabaseURL string `env:"SUPABASE_DB_URL"`
	HTTPAddr    string `env:"HTTP_ADDR, default=:8080"`
}

// EnvFilePath returns the settings file named by ENV_FILE, or DefaultEnvFile.
func EnvFilePath() string {
	if p := os.Getenv(envFile); p != "" {
		return p
	}
	return DefaultEnvFile
}

// LoadEnvFile copies KEY=VALUE lines from path into the process environment.
// Variables already set are left alone. A missing file is not an error and
// reports false.
func LoadEnvFile(path string) (bool, error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// Read binds the process environment into a Config without validating it.
func Read(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

// Load reads the settings file (best-effort) and the environment, then
// validates the result.
func Load(ctx context.Context, path string) (*Config, error) {
	if _, err := LoadEnvFile(path); err != nil {
		return nil, err
	}
	cfg, err := Read(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("%w: %s is required", ErrMissingValue, EnvURL)
	}
	if c.SupabaseKey == "" {
		return fmt.Errorf("%w: %s is required", ErrMissingValue, EnvKey)
	}
	u, err := url.Parse(c.SupabaseURL)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidURL, EnvURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) url, got %q", ErrInvalidURL, EnvURL, c.SupabaseURL)
	}
	if strings.ContainsAny(c.SupabaseKey, " \t\r\n") {
		return fmt.Errorf("%w: %s contains whitespace", ErrInvalidKey, EnvKey)
	}
	return nil
}
