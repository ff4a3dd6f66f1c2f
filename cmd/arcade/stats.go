package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/game-hub/internal/platform/tui"
)

var flagStatsTUI bool

var statsCmd = &cobra.Command{
	Use:   "stats [player]",
	Short: "Show a player's profile",
	Long: `Display plays and best score per game for a player.
Defaults to the configured player.

Examples:
  arcade stats
  arcade stats alice
  arcade stats --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsTUI, "tui", false, "Show the interactive profile page")
}

func runStats(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	player := cfg.ResolvePlayer()
	if len(args) == 1 {
		player = args[0]
	}

	backend, err := openScoreBackend(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	if flagStatsTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunStats(backend.stats, player, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := tui.LoadStats(ctx, backend.stats, player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Profile - %s\n", player)
	fmt.Println()
	fmt.Printf("  %-20s  %-6s  %s\n", "Game", "Plays", "Best")
	fmt.Printf("  %-20s  %-6s  %s\n", "----", "-----", "----")
	for _, r := range rows {
		fmt.Printf("  %-20s  %-6d  %d\n", r.Title, r.Plays, r.Best)
	}
}
