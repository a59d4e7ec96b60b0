package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration. Values come from environment
// variables (after .env files), then an optional YAML file, then CLI flags.
type Config struct {
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	DBPath         string        `yaml:"db_path" validate:"required"`
	DataDir        string        `yaml:"data_dir" validate:"required"`
	AlertsURL      string        `yaml:"alerts_url" validate:"omitempty,url"`
	AlertsAPIKey   string        `yaml:"alerts_api_key"`
	PlanCacheTTL   time.Duration `yaml:"plan_cache_ttl" validate:"min=0"`
	AllowedOrigins []string      `yaml:"allowed_origins" validate:"dive,required"`
}

// envFiles are loaded in order; later files override earlier ones.
var envFiles = []string{".env", ".env.local"}

// Load reads configuration from .env files, environment variables and the
// YAML file named by METROEXIT_CONFIG, then validates it.
func Load() (*Config, error) {
	_ = godotenv.Load(envFiles[0])
	for _, f := range envFiles[1:] {
		_ = godotenv.Overload(f) // Overload forces override of existing values
	}

	cfg := FromEnv()
	if path := os.Getenv("METROEXIT_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads configuration from environment variables with defaults.
func FromEnv() *Config {
	return &Config{
		Port:           envInt("METROEXIT_PORT", 8080),
		DBPath:         envStr("METROEXIT_DB_PATH", "./metroexit.db"),
		DataDir:        envStr("METROEXIT_DATA_DIR", "./data"),
		AlertsURL:      envStr("METROEXIT_ALERTS_URL", ""),
		AlertsAPIKey:   envStr("METROEXIT_ALERTS_API_KEY", ""),
		PlanCacheTTL:   envDuration("METROEXIT_PLAN_CACHE_TTL", 10*time.Minute),
		AllowedOrigins: envList("METROEXIT_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// LoadFile overrides cfg with the keys present in a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
