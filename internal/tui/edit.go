package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/tui/commands"
)

var editKeys = struct {
	Commit        key.Binding
	Cancel        key.Binding
	CycleQuadrant key.Binding
	CycleEnergy   key.Binding
}{
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	CycleQuadrant: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "quadrant"),
	),
	CycleEnergy: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "energy"),
	),
}

// startEdit opens the inline edit prompt for a block. External blocks are
// not editable; their truth lives in the calendar feed.
func (m *Model) startEdit(b *block.TimeBlock) {
	if b == nil || b.IsExternal() {
		return
	}

	ti := textinput.New()
	ti.Prompt = "Activity: "
	ti.CharLimit = 120
	ti.SetValue(b.ActivityName)
	ti.CursorEnd()
	ti.Focus()
	ti.PromptStyle = m.styles.StatusStyle
	ti.TextStyle = m.styles.StatusStyle

	m.editing = true
	m.editID = b.ID
	m.editQuadrant = b.Quadrant
	m.editEnergy = b.Energy
	m.editInput = ti
}

// handleEditKeyMsg handles keyboard input while the edit prompt is open.
func (m Model) handleEditKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, editKeys.Commit):
		id, name := m.editID, m.editInput.Value()
		q, e := m.editQuadrant, m.editEnergy
		m.editing = false
		return m, commands.UpdateBlock(m.repo, id, name, q, e)

	case key.Matches(msg, editKeys.Cancel):
		m.editing = false
		return m, nil

	case key.Matches(msg, editKeys.CycleQuadrant):
		m.editQuadrant = nextQuadrant(m.editQuadrant)
		return m, nil

	case key.Matches(msg, editKeys.CycleEnergy):
		m.editEnergy = nextEnergy(m.editEnergy)
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// renderEditPrompt renders the inline edit line shown in place of the
// status line while editing.
func (m Model) renderEditPrompt() string {
	quadrant := m.styles.BlockStyle(&block.TimeBlock{Quadrant: m.editQuadrant}, false).
		Render(" " + string(m.editQuadrant) + " ")
	return fmt.Sprintf("%s %s %s  %s",
		m.editInput.View(),
		quadrant,
		m.styles.StatusStyle.Render(string(m.editEnergy)),
		m.styles.HelpStyle.Render("enter: save | esc: cancel | tab: quadrant | shift+tab: energy"),
	)
}

func nextQuadrant(q block.Quadrant) block.Quadrant {
	switch q {
	case block.QuadrantQ1:
		return block.QuadrantQ2
	case block.QuadrantQ2:
		return block.QuadrantQ3
	case block.QuadrantQ3:
		return block.QuadrantQ4
	default:
		return block.QuadrantQ1
	}
}

func nextEnergy(e block.Energy) block.Energy {
	switch e {
	case block.EnergyGives:
		return block.EnergyNeutral
	case block.EnergyNeutral:
		return block.EnergyDrains
	default:
		return block.EnergyGives
	}
}
