package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/game-hub/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game or your profile.
Press Esc in a game to return to the menu.`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagPlayer, "player", "", "Player identity for scores (overrides config)")
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	svc, cleanup := localServices(cfg)
	err := tui.RunArcade(playerFor(cfg), runtimeConfig(), svc)
	cleanup()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
