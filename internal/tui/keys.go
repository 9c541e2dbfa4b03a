package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palisadeengineering/timeaudit/internal/dateutil"
	"github.com/palisadeengineering/timeaudit/internal/tui/commands"
)

// keyMap defines the keybindings for the week grid.
type keyMap struct {
	Quit       key.Binding
	Cancel     key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	PageDown   key.Binding
	PageUp     key.Binding
	PrevWeek   key.Binding
	NextWeek   key.Binding
	Today      key.Binding
	Reload     key.Binding
	Sync       key.Binding
	Delete     key.Binding
	Edit       key.Binding
	CopyAudit  key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "page up"),
	),
	PrevWeek: key.NewBinding(
		key.WithKeys("H", "shift+left", "["),
		key.WithHelp("H", "prev week"),
	),
	NextWeek: key.NewBinding(
		key.WithKeys("L", "shift+right", "]"),
		key.WithHelp("L", "next week"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Sync: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sync"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit"),
	),
	CopyAudit: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy audit"),
	),
}

// helpBindings are the bindings shown on the help line, in order.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.ScrollDown, k.ScrollUp, k.PrevWeek, k.NextWeek, k.Today,
		k.Sync, k.Edit, k.Delete, k.CopyAudit, k.Quit,
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if m.editing {
		return m.handleEditKeyMsg(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		// Abandon an in-flight gesture first; a second press deselects.
		if m.tracker.Active() {
			m.tracker.Cancel()
			return m, nil
		}
		m.selectedID = ""
		return m, nil

	case key.Matches(msg, keys.ScrollDown):
		m.scrollBy(1)
	case key.Matches(msg, keys.ScrollUp):
		m.scrollBy(-1)
	case key.Matches(msg, keys.PageDown):
		m.scrollBy(m.visibleRows())
	case key.Matches(msg, keys.PageUp):
		m.scrollBy(-m.visibleRows())

	case key.Matches(msg, keys.PrevWeek):
		return m, m.setWeek(m.weekStart.AddDate(0, 0, -7))
	case key.Matches(msg, keys.NextWeek):
		return m, m.setWeek(m.weekStart.AddDate(0, 0, 7))
	case key.Matches(msg, keys.Today):
		return m, m.setWeek(dateutil.StartOfWeek(m.now(), m.config.WeekStart()))

	case key.Matches(msg, keys.Reload):
		m.loading = true
		return m, commands.LoadWeek(m.repo, m.weekStart)

	case key.Matches(msg, keys.Sync):
		m.setStatus("Syncing calendar...", 10*time.Second)
		return m, commands.SyncCalendar(m.repo, m.config.Sync.ICSURL, m.weekStart)

	case key.Matches(msg, keys.Delete):
		if m.selectedID == "" {
			m.setStatus("Nothing selected; click a block first", 3*time.Second)
			return m, clearStatusLater()
		}
		id := m.selectedID
		m.selectedID = ""
		return m, commands.DeleteBlock(m.repo, id)

	case key.Matches(msg, keys.Edit):
		if m.selectedID == "" {
			m.setStatus("Nothing selected; click a block first", 3*time.Second)
			return m, clearStatusLater()
		}
		m.startEdit(m.blockByID(m.selectedID))
		return m, nil

	case key.Matches(msg, keys.CopyAudit):
		return m.copyDayAudit()
	}

	return m, nil
}

// copyDayAudit copies a plain-text audit of the selected block's day (or
// today) to the clipboard.
func (m Model) copyDayAudit() (tea.Model, tea.Cmd) {
	day := m.gridCfg.DateToDayIndex(dateutil.TruncateToDay(m.now()))
	if b := m.blockByID(m.selectedID); b != nil {
		day = m.gridCfg.DateToDayIndex(b.Date)
	}
	if day < 0 {
		m.setStatus("No day to copy in this week", 3*time.Second)
		return m, clearStatusLater()
	}

	text := buildDayAudit(m.gridCfg.DayIndexToDate(day), m.dayBlocks[day])
	if err := clipboard.WriteAll(text); err != nil {
		return m, func() tea.Msg { return commands.ErrMsg{Err: err} }
	}
	m.setStatus("Copied day audit to clipboard", 3*time.Second)
	return m, clearStatusLater()
}
