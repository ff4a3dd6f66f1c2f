package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/game-hub/internal/api"
	"github.com/vovakirdan/game-hub/internal/storage"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP score service",
	Long: `Serve the score-recording service over HTTP, backed by the local database.

Endpoints:
  GET  /health
  GET  /api/v1/games
  POST /api/v1/scores                 {"game":"2048","score":1024,"player":"alice"}
  GET  /api/v1/scores/{game}?limit=n
  GET  /api/v1/players/{player}/stats

Point other arcades at it with report.endpoint in their config.

Examples:
  arcade api
  arcade api --addr :9090 --db ./scores.db`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "HTTP listen address (overrides config)")
}

func runAPI(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(os.Stderr, cfg, "arcade-api")

	addr := cfg.API.Address
	if flagAPIAddr != "" {
		addr = flagAPIAddr
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(store, logger, cfg.API.Timeout)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
