package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/game-hub/internal/api"
	"github.com/vovakirdan/game-hub/internal/config"
	"github.com/vovakirdan/game-hub/internal/games/t2048"
	"github.com/vovakirdan/game-hub/internal/hub"
	"github.com/vovakirdan/game-hub/internal/platform/tui"
	"github.com/vovakirdan/game-hub/internal/storage"
)

// loadConfig loads the arcade config and applies global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	t2048.SetFourProbability(cfg.T2048.SpawnFourProbability)
	return cfg
}

// newLogger creates a logger writing to w with the configured level.
func newLogger(w io.Writer, cfg config.Config, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           cfg.LogLevel(),
	})
}

// scoreBackend is where scores go and where stats come from.
type scoreBackend struct {
	sink  hub.ScoreSink
	stats tui.StatsSource
	store *storage.Store // nil when reporting to a remote service
}

func (b scoreBackend) Close() {
	if b.store != nil {
		b.store.Close()
	}
}

// openScoreBackend picks the remote score service if an endpoint is
// configured, otherwise the local SQLite database.
func openScoreBackend(cfg config.Config) (scoreBackend, error) {
	if cfg.Report.Endpoint != "" {
		client := api.NewClient(cfg.Report.Endpoint, nil)
		return scoreBackend{sink: client, stats: client}, nil
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return scoreBackend{}, err
	}
	return scoreBackend{sink: store, stats: store, store: store}, nil
}

// newReporter starts a reporter over the backend's sink.
func newReporter(cfg config.Config, backend scoreBackend, logger *log.Logger) *hub.Reporter {
	if backend.sink == nil {
		return nil
	}
	return hub.NewReporter(backend.sink, hub.ReporterConfig{
		QueueSize: cfg.Report.QueueSize,
		Timeout:   cfg.Report.Timeout,
	}, logger)
}
