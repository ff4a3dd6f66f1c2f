package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/game-hub/internal/registry"
	"github.com/vovakirdan/game-hub/internal/storage"
)

// StatsSource provides per-player statistics. Both the local store and
// the HTTP client satisfy it.
type StatsSource interface {
	PlayerStats(ctx context.Context, player string) (map[string]storage.PlayerGameStats, error)
}

const statsTimeout = 5 * time.Second

// StatsKeyMap defines the key bindings for the profile page.
type StatsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsRow is one game line on the profile page.
type StatsRow struct {
	GameID string
	Title  string
	Plays  int
	Best   int
}

// statsLoadedMsg carries the result of an asynchronous stats fetch.
type statsLoadedMsg struct {
	rows []StatsRow
	err  error
}

// StatsModel is the Bubble Tea model for a player's profile page.
type StatsModel struct {
	player    string
	source    StatsSource
	rows      []StatsRow
	err       error
	loading   bool
	table     table.Model
	help      help.Model
	keys      StatsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
	detached  bool // Back quits the program
}

// NewStatsModel creates a profile page for player.
func NewStatsModel(source StatsSource, player string, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		player:  player,
		source:  source,
		keys:    DefaultStatsKeyMap(),
		help:    h,
		width:   width,
		height:  height,
		loading: source != nil,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Game", Width: 20},
		{Title: "Plays", Width: 8},
		{Title: "Best", Width: 10},
	}

	tableWidth := m.width - 6
	if tableWidth > 44 {
		columns[0].Width = min(tableWidth-22, 30)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// LoadStats fetches and orders a player's stats. Registered games with no
// plays are listed with zeros so the page always shows every game.
func LoadStats(ctx context.Context, source StatsSource, player string) ([]StatsRow, error) {
	stats, err := source.PlayerStats(ctx, player)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stats))
	var rows []StatsRow
	for _, g := range registry.List() {
		s := stats[g.ID]
		rows = append(rows, StatsRow{GameID: g.ID, Title: g.Title, Plays: s.Plays, Best: s.BestScore})
		seen[g.ID] = true
	}

	// Games recorded by another build of the arcade still show up.
	var extra []string
	for id := range stats {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		s := stats[id]
		rows = append(rows, StatsRow{GameID: id, Title: id, Plays: s.Plays, Best: s.BestScore})
	}

	return rows, nil
}

func (m StatsModel) load() tea.Cmd {
	source, player := m.source, m.player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
		defer cancel()

		rows, err := LoadStats(ctx, source, player)
		return statsLoadedMsg{rows: rows, err: err}
	}
}

// updateTableRows updates the table with current stats.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row{
			r.Title,
			fmt.Sprintf("%d", r.Plays),
			fmt.Sprintf("%d", r.Best),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init starts loading stats.
func (m StatsModel) Init() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return m.load()
}

// Update handles messages for the profile page.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case statsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.rows = msg.rows
		m.updateTableRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.detached {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if m.source == nil {
				return m, nil
			}
			m.loading = true
			return m, m.load()

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the profile page.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("PROFILE - %s", m.player), m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderContent renders the table or a status message.
func (m StatsModel) renderContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case m.source == nil:
		return emptyStyle.Render("Stats are unavailable without a score service.")
	case m.loading:
		return emptyStyle.Render("Loading...")
	case m.err != nil:
		return emptyStyle.Render("Could not load stats: " + m.err.Error())
	case len(m.rows) == 0:
		return emptyStyle.Render("No games registered.")
	}

	return m.table.View()
}

// Rows returns the loaded stats.
func (m StatsModel) Rows() []StatsRow {
	return m.rows
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the profile page on its own.
func RunStats(source StatsSource, player string, width, height int) error {
	model := NewStatsModel(source, player, width, height)
	model.detached = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
