package hub

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/game-hub/internal/core"
	"github.com/vovakirdan/game-hub/internal/registry"
)

// Presenter consumes game state for display.
// Calls happen while the session lock is held; implementations must not
// call back into the Session.
type Presenter interface {
	// Present is called after every processed input.
	Present(gameID string, state core.GameState)

	// GameOver is called once when a game reaches its terminal state.
	GameOver(gameID string, finalScore int)
}

// Session owns one game for one identity and processes its inputs one at a time.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	identity  string
	game      registry.Game
	config    core.RuntimeConfig
	reporter  *Reporter
	presenter Presenter
	logger    *log.Logger
	state     core.GameState
	startedAt time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithReporter sets where new best scores are sent.
func WithReporter(r *Reporter) SessionOption {
	return func(s *Session) {
		s.reporter = r
	}
}

// WithPresenter sets the presentation sink.
func WithPresenter(p Presenter) SessionOption {
	return func(s *Session) {
		s.presenter = p
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession starts a game for identity. A zero seed is replaced with a
// time-based one.
func NewSession(game registry.Game, identity string, cfg core.RuntimeConfig, opts ...SessionOption) *Session {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	s := &Session{
		id:       uuid.New(),
		identity: identity,
		game:     game,
		config:   cfg,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id.String(), "game", game.ID())

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	return s
}

// ID returns the unique session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Identity returns the player the session reports scores for.
func (s *Session) Identity() string {
	return s.identity
}

// GameID returns the identifier of the hosted game.
func (s *Session) GameID() string {
	return s.game.ID()
}

// Title returns the display name of the hosted game.
func (s *Session) Title() string {
	return s.game.Title()
}

// Step processes one input event to completion. A restart action starts a
// new game; everything else goes to the game. New best scores are handed
// to the reporter without waiting for delivery.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Has(core.ActionRestart) {
		s.resetLocked()
		return core.StepResult{State: s.state}
	}

	res := s.game.Step(in)
	s.state = res.State

	if res.NewBest {
		s.reporter.Report(s.identity, s.game.ID(), res.State.BestScore)
	}

	if s.presenter != nil {
		s.presenter.Present(s.game.ID(), s.state)
	}

	if res.Ended {
		s.logger.Info("game over",
			"identity", s.identity,
			"score", res.State.Score,
			"best", res.State.BestScore,
			"duration", time.Since(s.startedAt).Round(time.Second),
		)
		if s.presenter != nil {
			s.presenter.GameOver(s.game.ID(), res.State.Score)
		}
	}

	return res
}

// Reset starts a new game. The best score carries over.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.game.Reset(s.config)
	s.state = s.game.State()
	s.startedAt = time.Now()

	if s.presenter != nil {
		s.presenter.Present(s.game.ID(), s.state)
	}
}

// State returns the state after the last processed input.
func (s *Session) State() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Resize forwards a new screen size to the game.
func (s *Session) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.ScreenW = width
	s.config.ScreenH = height
	if r, ok := s.game.(registry.Resizer); ok {
		r.Resize(width, height)
	}
}

// Render draws the game into dst.
func (s *Session) Render(dst *core.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Render(dst)
}
