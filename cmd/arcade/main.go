// arcade is a terminal arcade for playing 2048, with a score service.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [game]       - Play a game (menu if no game is given)
//	arcade menu              - Start menu to pick games interactively
//	arcade scores <game>     - Show high scores for a game
//	arcade stats [player]    - Show a player's profile
//	arcade serve             - Start SSH server for remote play
//	arcade api               - Start the HTTP score service
//
// Global flags:
//
//	--config <path>     - Arcade config YAML
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/game-hub/internal/games/t2048"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade - Play 2048 in your terminal",
	Long: `Arcade is a terminal gaming hub. Play 2048 locally or over SSH,
and keep your best scores in a local database or a shared score service.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View high scores
  stats    - View a player's profile
  serve    - Start SSH server for remote play
  api      - Start the HTTP score service

Examples:
  arcade list
  arcade play 2048
  arcade play 2048 --seed 42
  arcade serve --ssh :2222
  arcade api --addr :8080
  arcade scores 2048
  arcade stats alice`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arcade config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}
