package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vovakirdan/game-hub/internal/storage"
)

// Client talks to a remote score service. It satisfies hub.ScoreSink.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Code)
	}
	return fmt.Sprintf("api: status %d: %s", e.Code, e.Message)
}

// Record submits a score for identity.
func (c *Client) Record(ctx context.Context, identity, gameID string, score int) error {
	_, err := c.SubmitScore(ctx, identity, gameID, score)
	return err
}

// SubmitScore posts a score and returns the stored record ID.
func (c *Client) SubmitScore(ctx context.Context, player, gameID string, score int) (int64, error) {
	body, err := json.Marshal(submitRequest{Game: gameID, Score: &score, Player: player})
	if err != nil {
		return 0, fmt.Errorf("api: encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/scores", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if player != "" {
		req.Header.Set(UserHeader, player)
	}

	var resp submitResponse
	if err := c.do(req, http.StatusCreated, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// TopScores fetches the best scores for a game.
func (c *Client) TopScores(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error) {
	u := fmt.Sprintf("%s/api/v1/scores/%s", c.baseURL, url.PathEscape(gameID))
	if limit > 0 {
		u += fmt.Sprintf("?limit=%d", limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	var entries []storage.ScoreEntry
	if err := c.do(req, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// PlayerStats fetches per-game stats for a player.
func (c *Client) PlayerStats(ctx context.Context, player string) (map[string]storage.PlayerGameStats, error) {
	u := fmt.Sprintf("%s/api/v1/players/%s/stats", c.baseURL, url.PathEscape(player))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	stats := make(map[string]storage.PlayerGameStats)
	if err := c.do(req, http.StatusOK, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
