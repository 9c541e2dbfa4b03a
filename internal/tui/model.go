// Package tui provides the terminal user interface for timeaudit.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/config"
	"github.com/palisadeengineering/timeaudit/internal/dateutil"
	"github.com/palisadeengineering/timeaudit/internal/grid"
	"github.com/palisadeengineering/timeaudit/internal/tui/commands"
	"github.com/palisadeengineering/timeaudit/internal/tui/theme"
)

// Layout constants in terminal cells.
const (
	gutterWidth     = 6 // "09:00 "
	headerLines     = 2 // title line + day header line
	footerLines     = 2 // status line + help line
	defaultColWidth = 16

	// Terminal cells are coarse: one cell of travel is a deliberate drag.
	dragActivationDistance = 1.0
	// How far into a block's last row still counts as grabbing the handle.
	resizeHandleRows = 1
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   block.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Gesture state machine
	tracker *grid.Tracker
	gridCfg grid.Config

	// Week state
	weekStart time.Time
	blocks    []*block.TimeBlock
	dayBlocks [7][]*block.TimeBlock
	layouts   [7]map[string]grid.Layout
	loading   bool

	// Block selected by clicking; target of delete and edit.
	selectedID string

	// Inline edit prompt state
	editing      bool
	editID       string
	editQuadrant block.Quadrant
	editEnergy   block.Energy
	editInput    textinput.Model

	// Terminal dimensions and scroll
	width        int
	height       int
	colWidth     int
	scrollOffset int // rows above the first visible slot

	// Messages
	statusMsg  string
	statusTime time.Time
	err        error

	// Injectable clock for tests.
	now func() time.Time
}

// New creates a new TUI model.
func New(repo block.Repository, cfg *config.Config) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}

	m := &Model{
		repo:     repo,
		config:   cfg,
		theme:    t,
		styles:   NewStyles(t),
		colWidth: defaultColWidth,
		loading:  true,
		now:      time.Now,
	}

	m.weekStart = dateutil.StartOfWeek(m.now(), cfg.WeekStart())
	m.gridCfg = m.buildGridConfig(m.weekStart)
	m.tracker = grid.NewTracker(m.gridCfg)
	m.tracker.SetActivation(dragActivationDistance, grid.DefaultMinHoldDelay)
	m.tracker.SetViewport(m.viewportRect(), float64(m.scrollOffset))

	return m
}

// buildGridConfig derives the grid engine configuration for a week.
// One terminal row equals one granularity slot, so HourHeight is the
// number of slots per hour.
func (m *Model) buildGridConfig(weekStart time.Time) grid.Config {
	g := m.config.Calendar.GranularityMinutes
	if g <= 0 {
		g = grid.DefaultGranularity
	}
	return grid.Config{
		StartHour:          m.config.Calendar.StartHour,
		EndHour:            m.config.Calendar.EndHour,
		GranularityMinutes: g,
		HourHeight:         float64(60 / g),
		GutterWidth:        gutterWidth,
		NumDays:            7,
		FirstDate:          weekStart,
		EdgeTolerance:      2,
	}
}

// totalRows is the full height of the grid in slot rows.
func (m *Model) totalRows() int {
	return (m.gridCfg.WindowEnd() - m.gridCfg.WindowStart()) / m.gridCfg.Granularity()
}

// visibleRows is how many slot rows fit in the terminal.
func (m *Model) visibleRows() int {
	rows := m.height - headerLines - footerLines
	if rows < 0 {
		rows = 0
	}
	if total := m.totalRows(); rows > total {
		rows = total
	}
	return rows
}

// viewportRect is the grid area in terminal cells. The y origin sits just
// below the header so pointer rows map directly to slot rows.
func (m *Model) viewportRect() grid.Rect {
	return grid.Rect{
		X:      0,
		Y:      headerLines,
		Width:  float64(gutterWidth + 7*m.colWidth),
		Height: float64(m.visibleRows()),
	}
}

// setWeek repoints the grid at a new week and reloads it.
func (m *Model) setWeek(weekStart time.Time) tea.Cmd {
	m.weekStart = weekStart
	m.gridCfg = m.buildGridConfig(weekStart)
	m.tracker.SetConfig(m.gridCfg)
	m.tracker.SetViewport(m.viewportRect(), float64(m.scrollOffset))
	m.selectedID = ""
	m.loading = true
	return commands.LoadWeek(m.repo, weekStart)
}

// setBlocks partitions loaded blocks into day columns and recomputes the
// per-day overlap layouts.
func (m *Model) setBlocks(blocks []*block.TimeBlock) {
	m.blocks = blocks
	m.dayBlocks = [7][]*block.TimeBlock{}
	for _, b := range blocks {
		day := m.gridCfg.DateToDayIndex(b.Date)
		if day < 0 {
			continue
		}
		m.dayBlocks[day] = append(m.dayBlocks[day], b)
	}
	for day := 0; day < 7; day++ {
		m.layouts[day] = grid.ComputeDayLayout(m.dayBlocks[day])
	}
}

// neighborSource exposes the committed intervals per day to the snap
// resolver, excluding the block being dragged.
func (m *Model) neighborSource() grid.NeighborSource {
	return grid.NeighborFunc(func(day int, excludeID string) []grid.Interval {
		if day < 0 || day >= 7 {
			return nil
		}
		var ivs []grid.Interval
		for _, b := range m.dayBlocks[day] {
			if b.ID == excludeID {
				continue
			}
			ivs = append(ivs, grid.Interval{Start: b.StartMinutes(), End: b.EndMinutes()})
		}
		return ivs
	})
}

// blockByID finds a loaded block, or nil.
func (m *Model) blockByID(id string) *block.TimeBlock {
	for _, b := range m.blocks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// calculateColWidth splits the available width across the 7 day columns.
func (m *Model) calculateColWidth() int {
	w := (m.width - gutterWidth) / 7
	if w < 8 {
		w = 8
	}
	return w
}

// setStatus shows a transient status message.
func (m *Model) setStatus(msg string, d time.Duration) {
	m.statusMsg = msg
	m.statusTime = m.now().Add(d)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadWeek(m.repo, m.weekStart)
}

// Run starts the TUI.
func Run(repo block.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo block.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(repo, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
