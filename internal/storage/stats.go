package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PlayerGameStats is one player's record for one game.
type PlayerGameStats struct {
	Plays     int `json:"plays"`
	BestScore int `json:"bestScore"`
}

// PlayerStats returns per-game play counts and best scores for a player.
// An unknown player yields an empty map.
func (s *Store) PlayerStats(ctx context.Context, player string) (map[string]PlayerGameStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, COUNT(*), MAX(score)
		 FROM scores
		 WHERE player = ?
		 GROUP BY game_id`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]PlayerGameStats)
	for rows.Next() {
		var gameID string
		var ps PlayerGameStats
		if err := rows.Scan(&gameID, &ps.Plays, &ps.BestScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[gameID] = ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string    `json:"game"`
	GamesCount int       `json:"games"`
	Players    int       `json:"players"`
	HighScore  int       `json:"highScore"`
	AvgScore   float64   `json:"avgScore"`
	TotalScore int64     `json:"totalScore"`
	LastPlayed time.Time `json:"lastPlayed"`
}

// GameStats retrieves aggregated statistics for a specific game.
func (s *Store) GameStats(ctx context.Context, gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.Players, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// AllGamesStats retrieves statistics for all games that have been played.
func (s *Store) AllGamesStats(ctx context.Context) (map[string]*GameStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, COUNT(*), COUNT(DISTINCT player), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.Players, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTimestamp(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
