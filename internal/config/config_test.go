package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kr/pretty"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"METROEXIT_PORT", "METROEXIT_DB_PATH", "METROEXIT_DATA_DIR", "METROEXIT_ALERTS_URL",
		"METROEXIT_ALERTS_API_KEY", "METROEXIT_PLAN_CACHE_TTL", "METROEXIT_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}

	got := FromEnv()
	want := &Config{
		Port:           8080,
		DBPath:         "./metroexit.db",
		DataDir:        "./data",
		PlanCacheTTL:   10 * time.Minute,
		AllowedOrigins: []string{"*"},
	}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Errorf("FromEnv() diff: %v", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("METROEXIT_PORT", "9090")
	t.Setenv("METROEXIT_PLAN_CACHE_TTL", "30s")
	t.Setenv("METROEXIT_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("METROEXIT_ALERTS_URL", "https://api.example/alerts.pb")

	got := FromEnv()
	if got.Port != 9090 {
		t.Errorf("Port = %d, want 9090", got.Port)
	}
	if got.PlanCacheTTL != 30*time.Second {
		t.Errorf("PlanCacheTTL = %v, want 30s", got.PlanCacheTTL)
	}
	if diff := pretty.Diff(got.AllowedOrigins, []string{"https://a.example", "https://b.example"}); len(diff) > 0 {
		t.Errorf("AllowedOrigins diff: %v", diff)
	}
	if got.AlertsURL != "https://api.example/alerts.pb" {
		t.Errorf("AlertsURL = %q", got.AlertsURL)
	}
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("METROEXIT_PORT", "eighty")
	t.Setenv("METROEXIT_PLAN_CACHE_TTL", "soon")

	got := FromEnv()
	if got.Port != 8080 {
		t.Errorf("Port = %d, want fallback 8080", got.Port)
	}
	if got.PlanCacheTTL != 10*time.Minute {
		t.Errorf("PlanCacheTTL = %v, want fallback 10m", got.PlanCacheTTL)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metroexit.yml")
	data := "port: 3000\nplan_cache_ttl: 1m\nallowed_origins:\n  - https://metro.example\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Port: 8080, DBPath: "db", DataDir: "data"}
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 3000 || cfg.PlanCacheTTL != time.Minute {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DBPath != "db" {
		t.Errorf("keys absent from the file should be kept, DBPath = %q", cfg.DBPath)
	}
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Port: 8080, DBPath: "db", DataDir: "data"}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"port zero", func(c *Config) { c.Port = 0 }, false},
		{"port too large", func(c *Config) { c.Port = 70000 }, false},
		{"no db path", func(c *Config) { c.DBPath = "" }, false},
		{"bad alerts url", func(c *Config) { c.AlertsURL = "not a url" }, false},
		{"empty origin", func(c *Config) { c.AllowedOrigins = []string{""} }, false},
		{"negative ttl", func(c *Config) { c.PlanCacheTTL = -time.Second }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metroexit.yml")
	if err := os.WriteFile(path, []byte("port: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("METROEXIT_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Error("Load should reject port 0 from the config file")
	}

	if err := os.WriteFile(path, []byte("port: 4000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("Port = %d, want 4000", cfg.Port)
	}
}
