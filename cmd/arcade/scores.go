package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/game-hub/internal/api"
	"github.com/vovakirdan/game-hub/internal/registry"
	"github.com/vovakirdan/game-hub/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game, or a summary of
every game played when no game is given.
Reads the score service when report.endpoint is configured, the local database otherwise.

Examples:
  arcade scores
  arcade scores 2048
  arcade scores 2048 --limit 25
  arcade scores 2048 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all local scores for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runScoresSummary()
		return
	}
	gameID := args[0]

	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg := loadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		scores []storage.ScoreEntry
		err    error
	)
	if cfg.Report.Endpoint != "" {
		scores, err = api.NewClient(cfg.Report.Endpoint, nil).TopScores(ctx, gameID, flagScoresLimit)
	} else {
		var store *storage.Store
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		if flagScoresClear {
			if err := store.ClearScores(ctx, gameID); err != nil {
				fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Cleared all scores for %s.\n", info.Title)
			return
		}
		scores, err = store.TopScores(ctx, gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	maxPlayerLen := len("Player")
	for _, entry := range scores {
		maxPlayerLen = max(maxPlayerLen, len(entry.Player))
	}

	fmt.Printf("  %-4s  %-*s  %-10s  %s\n", "Rank", maxPlayerLen, "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-*s  %-10s  %s\n", "----", maxPlayerLen, "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-*s  %-10d  %s\n", i+1, maxPlayerLen, entry.Player, entry.Score, dateStr)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
}

// runScoresSummary prints aggregate stats for every game in the local database.
func runScoresSummary() {
	cfg := loadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	all, err := store.AllGamesStats(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-6s  %-8s  %-10s  %-10s  %s\n", "Game", "Games", "Players", "Best", "Average", "Last played")
	fmt.Printf("  %-12s  %-6s  %-8s  %-10s  %-10s  %s\n", "----", "-----", "-------", "----", "-------", "-----------")
	for _, id := range ids {
		gs := all[id]
		title := id
		if info, ok := registry.Info(id); ok {
			title = info.Title
		}
		fmt.Printf("  %-12s  %-6d  %-8d  %-10d  %-10.1f  %s\n",
			title, gs.GamesCount, gs.Players, gs.HighScore, gs.AvgScore,
			gs.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}
