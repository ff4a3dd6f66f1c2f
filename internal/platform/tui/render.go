package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/game-hub/internal/core"
)

// Palette maps core colors to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

// DefaultPalette returns the ANSI 256-color palette.
func DefaultPalette() Palette {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Palette{
		core.ColorDefault:       lipgloss.NewStyle(),
		core.ColorRed:           fg("1"),
		core.ColorGreen:         fg("2"),
		core.ColorYellow:        fg("3"),
		core.ColorBlue:          fg("4"),
		core.ColorMagenta:       fg("5"),
		core.ColorCyan:          fg("6"),
		core.ColorWhite:         fg("7"),
		core.ColorBrightRed:     fg("9").Bold(true),
		core.ColorBrightGreen:   fg("10").Bold(true),
		core.ColorBrightYellow:  fg("11").Bold(true),
		core.ColorBrightBlue:    fg("12"),
		core.ColorBrightMagenta: fg("13").Bold(true),
		core.ColorBrightCyan:    fg("14"),
		core.ColorBrightWhite:   fg("15").Bold(true),
		core.ColorOrange:        fg("208"),
		core.ColorGray:          fg("245"),
	}
}

var defaultPalette = DefaultPalette()

// RenderScreen converts a Screen buffer to a styled string using the default palette.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	plain := p[core.ColorDefault]
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		var run strings.Builder
		runColor := core.ColorDefault
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style, ok := p[runColor]
			if !ok {
				style = plain
			}
			sb.WriteString(style.Render(run.String()))
			run.Reset()
		}

		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != runColor {
				flush()
				runColor = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		flush()
	}
	return sb.String()
}
