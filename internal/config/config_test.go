package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML(), "embedded")
	if err != nil {
		t.Fatalf("parse embedded: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config = %+v\nwant %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcade.yaml")
	data := []byte(`
player: alice
t2048:
  spawn_four_probability: 0.25
report:
  timeout: 2s
  endpoint: http://scores.local
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Player != "alice" {
		t.Errorf("Player = %q", cfg.Player)
	}
	if cfg.T2048.SpawnFourProbability != 0.25 {
		t.Errorf("SpawnFourProbability = %v", cfg.T2048.SpawnFourProbability)
	}
	if cfg.Report.Timeout != 2*time.Second || cfg.Report.Endpoint != "http://scores.local" {
		t.Errorf("Report = %+v", cfg.Report)
	}
	// Unset values keep defaults
	if cfg.Report.QueueSize != 16 || cfg.SSH.Address != ":23234" {
		t.Errorf("defaults not preserved: %+v %+v", cfg.Report, cfg.SSH)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("t2048: [unclosed"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("t2048:\n  spawn_four_probability: 1.5\n"), 0o644)
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative probability", func(c *Config) { c.T2048.SpawnFourProbability = -0.1 }},
		{"probability above one", func(c *Config) { c.T2048.SpawnFourProbability = 1.1 }},
		{"zero queue", func(c *Config) { c.Report.QueueSize = 0 }},
		{"zero timeout", func(c *Config) { c.Report.Timeout = 0 }},
		{"zero api timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}

	cfg.Log.Level = "nonsense"
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("LogLevel() fallback = %v", cfg.LogLevel())
	}
}

func TestResolvePlayer(t *testing.T) {
	cfg := Default()

	cfg.Player = "  bob "
	if got := cfg.ResolvePlayer(); got != "bob" {
		t.Errorf("ResolvePlayer() = %q, want bob", got)
	}

	cfg.Player = ""
	t.Setenv("USER", "carol")
	if got := cfg.ResolvePlayer(); got != "carol" {
		t.Errorf("ResolvePlayer() = %q, want carol", got)
	}

	t.Setenv("USER", "")
	if got := cfg.ResolvePlayer(); got != "Anonymous" {
		t.Errorf("ResolvePlayer() = %q, want Anonymous", got)
	}
}
