// Package api exposes the score service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/game-hub/internal/registry"
	"github.com/vovakirdan/game-hub/internal/storage"
)

// UserHeader carries the player identity when the request body omits it.
const UserHeader = "X-Arcade-User"

// maxBodyBytes bounds score submissions.
const maxBodyBytes = 4 << 10

// ScoreStore is the persistence the server needs.
type ScoreStore interface {
	SaveScore(ctx context.Context, player, gameID string, score int) (int64, error)
	TopScores(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error)
	PlayerStats(ctx context.Context, player string) (map[string]storage.PlayerGameStats, error)
	PlayerScores(ctx context.Context, player string, limit int) ([]storage.ScoreEntry, error)
	GameStats(ctx context.Context, gameID string) (*storage.GameStats, error)
}

// Server handles HTTP requests.
type Server struct {
	store   ScoreStore
	logger  *log.Logger
	timeout time.Duration
}

// NewServer creates a new API server.
func NewServer(store ScoreStore, logger *log.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Server{store: store, logger: logger, timeout: timeout}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/games", s.handleListGames)
		r.Get("/games/{game}/stats", s.handleGameStats)
		r.Post("/scores", s.handleSubmitScore)
		r.Get("/scores/{game}", s.handleTopScores)
		r.Get("/players/{player}/stats", s.handlePlayerStats)
		r.Get("/players/{player}/scores", s.handlePlayerScores)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("score API listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("stopping score API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api: shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type submitRequest struct {
	Game   string `json:"game"`
	Score  *int   `json:"score"`
	Player string `json:"player"`
}

type submitResponse struct {
	ID int64 `json:"id"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, status, errorResponse{
		Error:     msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) handleListGames(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	if games == nil {
		games = []registry.GameInfo{}
	}
	s.writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Game == "" || req.Score == nil {
		s.writeError(w, r, http.StatusBadRequest, "game and score are required")
		return
	}
	if *req.Score < 0 {
		s.writeError(w, r, http.StatusBadRequest, "score must not be negative")
		return
	}
	if !registry.Exists(req.Game) {
		s.writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown game %q", req.Game))
		return
	}

	player := strings.TrimSpace(req.Player)
	if player == "" {
		player = strings.TrimSpace(r.Header.Get(UserHeader))
	}
	if player == "" {
		player = storage.AnonymousPlayer
	}

	id, err := s.store.SaveScore(r.Context(), player, req.Game, *req.Score)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidScore) {
			s.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("save score", "game", req.Game, "player", player, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "cannot save score")
		return
	}

	s.logger.Info("score recorded", "game", req.Game, "player", player, "score", *req.Score, "id", id)
	s.writeJSON(w, http.StatusCreated, submitResponse{ID: id})
}

func (s *Server) handleTopScores(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game")
	if !registry.Exists(gameID) {
		s.writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown game %q", gameID))
		return
	}

	limit, ok := s.parseLimit(w, r)
	if !ok {
		return
	}

	entries, err := s.store.TopScores(r.Context(), gameID, limit)
	if err != nil {
		s.logger.Error("top scores", "game", gameID, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "cannot load scores")
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// parseLimit reads ?limit=n, defaulting to 10. It writes the error response itself.
func (s *Server) parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 10, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > 100 {
		s.writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
		return 0, false
	}
	return n, true
}

func (s *Server) handleGameStats(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game")
	if !registry.Exists(gameID) {
		s.writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown game %q", gameID))
		return
	}

	stats, err := s.store.GameStats(r.Context(), gameID)
	if err != nil {
		s.logger.Error("game stats", "game", gameID, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "cannot load stats")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handlePlayerScores(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	limit, ok := s.parseLimit(w, r)
	if !ok {
		return
	}

	entries, err := s.store.PlayerScores(r.Context(), player, limit)
	if err != nil {
		s.logger.Error("player scores", "player", player, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "cannot load scores")
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	stats, err := s.store.PlayerStats(r.Context(), player)
	if err != nil {
		s.logger.Error("player stats", "player", player, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "cannot load stats")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}
