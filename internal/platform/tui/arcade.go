package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/game-hub/internal/core"
	"github.com/vovakirdan/game-hub/internal/registry"
)

type arcadeView int

const (
	viewMenu arcadeView = iota
	viewGame
	viewProfile
)

// ArcadeModel manages the full arcade flow: menu -> game or profile -> menu.
// It is the top-level model for SSH sessions and for `arcade play` without a game.
type ArcadeModel struct {
	services Services
	config   core.RuntimeConfig
	player   string
	view     arcadeView
	menu     MenuModel
	game     *GameModel
	profile  *StatsModel
	quitting bool
}

// NewArcadeModel creates the landing page for player.
func NewArcadeModel(player string, cfg core.RuntimeConfig, svc Services) ArcadeModel {
	return ArcadeModel{
		services: svc,
		config:   cfg,
		player:   player,
		menu:     NewMenuModel(player, cfg, svc.Stats != nil),
	}
}

// Init initializes the session.
func (m ArcadeModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m ArcadeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewProfile:
		return m.updateProfile(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m ArcadeModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Kind {
	case MenuItemProfile:
		profile := NewStatsModel(m.services.Stats, m.player, m.config.ScreenW, m.config.ScreenH)
		m.profile = &profile
		m.view = viewProfile
		return m, m.profile.Init()

	default:
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Menu only lists registered games
			m.menu = NewMenuModel(m.player, m.config, m.services.Stats != nil)
			return m, nil
		}

		cfg := m.config
		cfg.Seed = time.Now().UnixNano()
		gm := NewGameModel(game, m.player, cfg, m.services).WithBack()
		m.game = &gm
		m.view = viewGame
		return m, m.game.Init()
	}
}

// updateGame handles updates when in game mode.
func (m ArcadeModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateProfile handles updates when the profile page is shown.
func (m ArcadeModel) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.profile.Update(msg)
	if statsModel, ok := newModel.(StatsModel); ok {
		m.profile = &statsModel
	}

	if m.profile.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.profile.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m ArcadeModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.game = nil
	m.profile = nil
	m.menu = NewMenuModel(m.player, m.config, m.services.Stats != nil)
	return m, m.menu.Init()
}

// View renders the current view.
func (m ArcadeModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewProfile:
		return m.profile.View()
	}
	return m.menu.View()
}

// RunArcade starts the landing page locally.
func RunArcade(player string, cfg core.RuntimeConfig, svc Services) error {
	p := tea.NewProgram(
		NewArcadeModel(player, cfg, svc),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
