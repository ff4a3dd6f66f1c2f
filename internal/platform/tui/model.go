// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping and the SSH server.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/game-hub/internal/core"
	"github.com/vovakirdan/game-hub/internal/hub"
	"github.com/vovakirdan/game-hub/internal/registry"
)

// Services are shared by every model in one process.
type Services struct {
	Reporter *hub.Reporter // Receives new best scores; nil plays offline
	Stats    StatsSource   // Backs the profile page; nil hides it
	Logger   *log.Logger
}

// banner collects presenter callbacks for the status line.
type banner struct {
	best      int
	newBest   bool
	gameOver  bool
	lastScore int
}

// Present records the latest state.
func (b *banner) Present(_ string, state core.GameState) {
	b.newBest = state.BestScore > b.best
	b.best = state.BestScore
	b.gameOver = state.GameOver
	b.lastScore = state.Score
}

// GameOver records the final score.
func (b *banner) GameOver(_ string, finalScore int) {
	b.gameOver = true
	b.lastScore = finalScore
}

func (b *banner) line() string {
	switch {
	case b.gameOver:
		return fmt.Sprintf("Game over with %d points", b.lastScore)
	case b.newBest:
		return fmt.Sprintf("New best: %d", b.best)
	}
	return ""
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// GameModel runs one game session inside Bubble Tea. Input is
// turn-based: each key press is one step, there is no tick loop.
type GameModel struct {
	session    *hub.Session
	screen     *core.Screen
	banner     *banner
	keyMapper  *KeyMapper
	help       help.Model
	quitting   bool
	backToMenu bool
	canGoBack  bool
}

// NewGameModel creates a model and its hub session.
func NewGameModel(game registry.Game, identity string, cfg core.RuntimeConfig, svc Services) GameModel {
	// One line is reserved for the status/help bar.
	cfg.ScreenH = max(cfg.ScreenH-1, 0)

	b := &banner{}
	opts := []hub.SessionOption{
		hub.WithReporter(svc.Reporter),
		hub.WithPresenter(b),
	}
	if svc.Logger != nil {
		opts = append(opts, hub.WithLogger(svc.Logger))
	}

	return GameModel{
		session:   hub.NewSession(game, identity, cfg, opts...),
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		banner:    b,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
}

// WithBack lets Esc/B leave the game instead of being ignored.
func (m GameModel) WithBack() GameModel {
	m.canGoBack = true
	return m
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		h := max(msg.Height-1, 0)
		m.screen.Resize(msg.Width, h)
		m.session.Resize(msg.Width, h)
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	frame := core.NewInputFrame()
	if m.keyMapper.MapKeyToFrame(msg, &frame) {
		m.quitting = true
		return m, tea.Quit
	}

	if frame.Has(core.ActionBack) {
		if m.canGoBack {
			m.backToMenu = true
		}
		return m, nil
	}

	if frame.Empty() {
		return m, nil
	}

	m.session.Step(frame)
	return m, nil
}

// View renders the game plus a status line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if line := m.banner.line(); line != "" {
		b.WriteString(statusStyle.Render(line))
		b.WriteString("  ")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

// State returns the state of the hosted game.
func (m GameModel) State() core.GameState {
	return m.session.State()
}

// Session returns the underlying hub session.
func (m GameModel) Session() *hub.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, identity string, cfg core.RuntimeConfig, svc Services) error {
	model := NewGameModel(game, identity, cfg, svc)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
