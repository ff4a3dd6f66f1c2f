package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/game-hub/internal/config"
	"github.com/vovakirdan/game-hub/internal/core"
	"github.com/vovakirdan/game-hub/internal/platform/tui"
	"github.com/vovakirdan/game-hub/internal/registry"
)

var (
	flagSeed   int64
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game, or open the menu when no game is given.

Controls (2048):
  Arrows/WASD/hjkl - Slide tiles
  R                - New game (best score is kept)
  Q/Ctrl+C         - Quit

Every new best score is reported to the score backend: the local
database, or the HTTP service set in report.endpoint.

Examples:
  arcade play 2048
  arcade play 2048 --seed 42
  arcade play 2048 --player alice
  arcade play 2048 --config ./arcade.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player identity for scores (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runMenu(cmd, args)
		return
	}

	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg := loadConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	svc, cleanup := localServices(cfg)
	runErr := tui.Run(game, playerFor(cfg), runtimeConfig(), svc)
	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

func playerFor(cfg config.Config) string {
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	return cfg.ResolvePlayer()
}

// localServices opens the score backend for an interactive session.
// Logs go to ~/.arcade/arcade.log so they don't corrupt the TUI.
// The returned cleanup drains pending reports.
func localServices(cfg config.Config) (tui.Services, func()) {
	logOut, closeLog := openLogFile()
	logger := newLogger(logOut, cfg, "arcade")

	backend, err := openScoreBackend(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		return tui.Services{Logger: logger}, closeLog
	}

	reporter := newReporter(cfg, backend, logger)
	svc := tui.Services{
		Reporter: reporter,
		Stats:    backend.stats,
		Logger:   logger,
	}

	return svc, func() {
		reporter.Close()
		backend.Close()
		closeLog()
	}
}

func openLogFile() (io.Writer, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return io.Discard, func() {}
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
