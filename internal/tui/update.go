package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palisadeengineering/timeaudit/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		m.clampScroll()
		m.tracker.SetViewport(m.viewportRect(), float64(m.scrollOffset))
		return m, nil

	case commands.WeekLoadedMsg:
		// A stale load for a week we already navigated away from is dropped.
		if !msg.WeekStart.Equal(m.weekStart) {
			return m, nil
		}
		m.setBlocks(msg.Blocks)
		m.loading = false
		return m, nil

	case commands.MutationDoneMsg:
		m.setStatus(msg.Status, 3*time.Second)
		return m, tea.Batch(
			commands.LoadWeek(m.repo, m.weekStart),
			clearStatusLater(),
		)

	case commands.SyncDoneMsg:
		m.setStatus(fmt.Sprintf("Imported %d events", msg.Count), 3*time.Second)
		return m, tea.Batch(
			commands.LoadWeek(m.repo, m.weekStart),
			clearStatusLater(),
		)

	case commands.ErrMsg:
		m.err = msg.Err
		m.setStatus(fmt.Sprintf("Error: %v", msg.Err), 5*time.Second)
		LogError(msg.Err)
		return m, clearStatusLater()

	case commands.StatusMsg:
		m.setStatus(msg.Msg, 3*time.Second)
		return m, clearStatusLater()

	case commands.ClearStatusMsg:
		if m.now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// clampScroll keeps the scroll offset within the grid.
func (m *Model) clampScroll() {
	maxScroll := m.totalRows() - m.visibleRows()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffset > maxScroll {
		m.scrollOffset = maxScroll
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// scrollBy moves the viewport and keeps the tracker in sync.
func (m *Model) scrollBy(rows int) {
	m.scrollOffset += rows
	m.clampScroll()
	m.tracker.SetViewport(m.viewportRect(), float64(m.scrollOffset))
}
