package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/arcade.yaml
var defaultArcadeYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath: "~/.arcade/scores.db",
		T2048: T2048Config{
			SpawnFourProbability: 0.1,
		},
		Report: ReportConfig{
			QueueSize: 16,
			Timeout:   5 * time.Second,
		},
		SSH: SSHConfig{
			Address:     ":23234",
			HostKey:     ".ssh/arcade_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		API: APIConfig{
			Address: ":8080",
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultArcadeYAML
}
