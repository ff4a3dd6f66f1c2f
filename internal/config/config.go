// Package config provides YAML-based configuration loading for the
// arcade: player identity, score storage, reporting and servers.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all arcade configuration.
type Config struct {
	Player string       `yaml:"player"`  // Identity for local play; empty means $USER
	DBPath string       `yaml:"db_path"` // SQLite score database
	T2048  T2048Config  `yaml:"t2048"`
	Report ReportConfig `yaml:"report"`
	SSH    SSHConfig    `yaml:"ssh"`
	API    APIConfig    `yaml:"api"`
	Log    LogConfig    `yaml:"log"`
}

// T2048Config tunes the 2048 engine.
type T2048Config struct {
	SpawnFourProbability float64 `yaml:"spawn_four_probability"`
}

// ReportConfig controls asynchronous score reporting.
type ReportConfig struct {
	QueueSize int           `yaml:"queue_size"`
	Timeout   time.Duration `yaml:"timeout"`
	Endpoint  string        `yaml:"endpoint"` // HTTP score service; empty writes to DBPath
}

// SSHConfig configures the SSH arcade server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// APIConfig configures the HTTP score service.
type APIConfig struct {
	Address string        `yaml:"address"`
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var problems []string

	if p := c.T2048.SpawnFourProbability; p < 0 || p > 1 {
		problems = append(problems, fmt.Sprintf("t2048.spawn_four_probability %v not in [0,1]", p))
	}
	if c.Report.QueueSize <= 0 {
		problems = append(problems, fmt.Sprintf("report.queue_size must be positive, got %d", c.Report.QueueSize))
	}
	if c.Report.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("report.timeout must be positive, got %s", c.Report.Timeout))
	}
	if c.API.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("api.timeout must be positive, got %s", c.API.Timeout))
	}
	if c.DBPath == "" {
		problems = append(problems, "db_path is empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level %q is unknown", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ResolvePlayer returns the configured player, then $USER, then "Anonymous".
func (c Config) ResolvePlayer() string {
	if p := strings.TrimSpace(c.Player); p != "" {
		return p
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "Anonymous"
}
