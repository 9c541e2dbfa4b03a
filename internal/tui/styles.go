package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	// Title style
	TitleStyle lipgloss.Style

	// Header styles
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Time gutter
	TimeGutterStyle lipgloss.Style

	// Empty slot
	EmptyCellStyle lipgloss.Style

	// Block cell styles, one per quadrant plus imported events
	BlockQ1Style       lipgloss.Style
	BlockQ2Style       lipgloss.Style
	BlockQ3Style       lipgloss.Style
	BlockQ4Style       lipgloss.Style
	BlockExternalStyle lipgloss.Style
	BlockSelectedStyle lipgloss.Style

	// Gesture previews
	SelectionStyle lipgloss.Style
	PreviewStyle   lipgloss.Style

	// Status and help lines
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}

	s.colorBg = theme.Color(t.Bg)
	s.colorBgHighlight = theme.Color(t.BgHighlight)
	s.colorBgSelection = theme.Color(t.BgSelection)
	s.colorFg = theme.Color(t.Fg)
	s.colorFgMuted = theme.Color(t.FgMuted)
	s.colorAccent = theme.Color(t.Accent)
	s.colorWarning = theme.Color(t.Warning)

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(s.colorAccent)

	s.TimeGutterStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Width(gutterWidth)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	// Quadrant colors as block backgrounds with the theme foreground on
	// top. The terminal does the contrast work.
	cell := lipgloss.NewStyle().Foreground(s.colorBg)
	s.BlockQ1Style = cell.Background(theme.Color(t.Q1))
	s.BlockQ2Style = cell.Background(theme.Color(t.Q2))
	s.BlockQ3Style = cell.Background(theme.Color(t.Q3))
	s.BlockQ4Style = cell.Background(theme.Color(t.Q4))
	s.BlockExternalStyle = cell.Background(theme.Color(t.External))

	s.BlockSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorFg).
		Background(s.colorBgSelection)

	s.SelectionStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgSelection)

	s.PreviewStyle = lipgloss.NewStyle().
		Foreground(s.colorBg).
		Background(s.colorAccent)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	return s
}

// BlockStyle picks the cell style for a block based on its origin,
// quadrant and selection state.
func (s *Styles) BlockStyle(b *block.TimeBlock, selected bool) lipgloss.Style {
	if selected {
		return s.BlockSelectedStyle
	}
	if b.IsExternal() {
		return s.BlockExternalStyle
	}
	switch b.Quadrant {
	case block.QuadrantQ1:
		return s.BlockQ1Style
	case block.QuadrantQ2:
		return s.BlockQ2Style
	case block.QuadrantQ3:
		return s.BlockQ3Style
	case block.QuadrantQ4:
		return s.BlockQ4Style
	}
	return s.BlockQ2Style
}
