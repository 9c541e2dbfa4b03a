package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/tui/commands"
)

func TestUpdate_WeekLoaded(t *testing.T) {
	m := newTestModel(t)
	m.loading = true

	updated, _ := m.Update(commands.WeekLoadedMsg{
		WeekStart: m.weekStart,
		Blocks:    []*block.TimeBlock{mustBlock(t, "Writing", "2026-03-16", "09:00", "10:00")},
	})

	got := updated.(Model)
	if got.loading {
		t.Error("loading still true after week loaded")
	}
	if len(got.dayBlocks[0]) != 1 {
		t.Errorf("Monday blocks = %d, want 1", len(got.dayBlocks[0]))
	}
}

func TestUpdate_StaleWeekLoadDropped(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(commands.WeekLoadedMsg{
		WeekStart: m.weekStart.AddDate(0, 0, -7),
		Blocks:    []*block.TimeBlock{mustBlock(t, "Old week", "2026-03-09", "09:00", "10:00")},
	})

	got := updated.(Model)
	if len(got.blocks) != 0 {
		t.Errorf("stale load applied %d blocks", len(got.blocks))
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 146, Height: 40})
	got := updated.(Model)

	if got.width != 146 {
		t.Errorf("width = %d, want 146", got.width)
	}
	if got.colWidth != 20 {
		t.Errorf("colWidth = %d, want 20", got.colWidth)
	}
}

func TestUpdate_MutationReloadsWeek(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(commands.MutationDoneMsg{Status: "Created block"})
	got := updated.(Model)

	if got.statusMsg != "Created block" {
		t.Errorf("status = %q, want %q", got.statusMsg, "Created block")
	}
	if cmd == nil {
		t.Fatal("expected reload command after mutation")
	}
}

func TestUpdate_ErrMsg(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(commands.ErrMsg{Err: errors.New("boom")})
	got := updated.(Model)

	if got.statusMsg != "Error: boom" {
		t.Errorf("status = %q, want error text", got.statusMsg)
	}
}

func TestUpdate_ClearStatusRespectsExpiry(t *testing.T) {
	m := newTestModel(t)

	m.setStatus("visible", 3*time.Second)
	updated, _ := m.Update(commands.ClearStatusMsg{})
	if got := updated.(Model); got.statusMsg != "visible" {
		t.Errorf("status cleared before its expiry")
	}

	m.setStatus("expired", -time.Second)
	updated, _ = m.Update(commands.ClearStatusMsg{})
	if got := updated.(Model); got.statusMsg != "" {
		t.Errorf("status = %q, want cleared", got.statusMsg)
	}
}

func TestScrollBy_Clamps(t *testing.T) {
	m := newTestModel(t)

	m.scrollBy(-5)
	if m.scrollOffset != 0 {
		t.Errorf("scroll below zero: %d", m.scrollOffset)
	}

	m.scrollBy(1000)
	if want := m.totalRows() - m.visibleRows(); m.scrollOffset != want {
		t.Errorf("scroll = %d, want clamped %d", m.scrollOffset, want)
	}
}
