package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/grid"
	"github.com/palisadeengineering/timeaudit/internal/tui/commands"
)

// handleMouseMsg routes mouse input into the gesture tracker and turns
// finished gestures into repository commands.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(1)
		return m, nil
	}

	// Gestures stay off while the edit prompt has focus.
	if m.editing {
		return m, nil
	}

	ev := grid.PointerEvent{X: float64(msg.X), Y: float64(msg.Y), Time: m.now()}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		hit := m.hitTest(ev)
		if err := m.tracker.PointerDown(ev, hit); err != nil {
			// Presses on the gutter or during another gesture are ignored.
			if !errors.Is(err, grid.ErrNoGestureStart) && !errors.Is(err, grid.ErrGestureActive) {
				return m, func() tea.Msg { return commands.ErrMsg{Err: err} }
			}
		}
		return m, nil

	case tea.MouseActionMotion:
		m.tracker.PointerMove(ev)
		return m, nil

	case tea.MouseActionRelease:
		res := m.tracker.PointerUp(ev, m.neighborSource())
		return m.applyGestureResult(res)
	}

	return m, nil
}

// applyGestureResult turns a finalized gesture outcome into a command.
func (m Model) applyGestureResult(res grid.Result) (tea.Model, tea.Cmd) {
	switch {
	case res.Create != nil:
		b, err := block.New("Untitled block", string(block.QuadrantQ2), string(block.EnergyNeutral),
			res.Create.Date.Format("2006-01-02"), res.Create.Start, res.Create.End)
		if err != nil {
			return m, func() tea.Msg { return commands.ErrMsg{Err: err} }
		}
		LogGesture("create", res)
		return m, commands.CreateBlock(m.repo, b)

	case res.Move != nil:
		LogGesture("move", res)
		return m, commands.MoveBlock(m.repo, res.Move.BlockID, res.Move.Date, res.Move.Start, res.Move.End)

	case res.Resize != nil:
		LogGesture("resize", res)
		return m, commands.ResizeBlock(m.repo, res.Resize.BlockID, res.Resize.NewEnd)

	case res.Click != nil:
		if res.Click.Block != nil {
			m.selectedID = res.Click.Block.ID
		} else {
			m.selectedID = ""
		}
		return m, nil
	}

	return m, nil
}

// hitTest classifies what sits under the pointer: a block body, a block's
// resize handle (its bottom row), or an empty slot. The renderer owns this
// because only it knows where blocks are drawn.
func (m Model) hitTest(ev grid.PointerEvent) grid.Hit {
	day, minutes, ok := m.tracker.Mapper().PointerToSlot(ev.X, ev.Y, m.viewportRect(), float64(m.scrollOffset))
	if !ok || day < 0 || day >= 7 {
		return grid.Hit{Kind: grid.HitEmpty}
	}

	b := m.blockAt(day, minutes, ev.X)
	if b == nil {
		return grid.Hit{Kind: grid.HitEmpty}
	}

	// The bottom row doubles as the resize handle, but only for blocks
	// taller than one slot; a single-slot block is all body.
	g := m.gridCfg.Granularity()
	if b.Duration() > g && minutes >= b.EndMinutes()-resizeHandleRows*g {
		return grid.Hit{Kind: grid.HitResizeHandle, Block: b}
	}
	return grid.Hit{Kind: grid.HitBlock, Block: b}
}

// blockAt finds the block rendered at the given day and minute. When
// overlapping blocks share the slot, the x position picks the layout
// column under the pointer.
func (m Model) blockAt(day, minutes int, x float64) *block.TimeBlock {
	colStart := float64(gutterWidth + day*m.colWidth)
	relX := (x - colStart) / float64(m.colWidth) * 100 // percent across the day column

	var fallback *block.TimeBlock
	for _, b := range m.dayBlocks[day] {
		if minutes < b.StartMinutes() || minutes >= b.EndMinutes() {
			continue
		}
		if fallback == nil {
			fallback = b
		}
		l, ok := m.layouts[day][b.ID]
		if !ok {
			continue
		}
		if relX >= l.LeftPercent && relX <= l.LeftPercent+l.WidthPercent {
			return b
		}
	}
	return fallback
}
