package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/palisadeengineering/timeaudit/internal/block"
)

func setTrueColor(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func TestView_RendersWeek(t *testing.T) {
	setTrueColor(t)
	m := newTestModel(t)
	m.setBlocks([]*block.TimeBlock{mustBlock(t, "Deep work", "2026-03-18", "09:00", "10:30")})

	out := ansi.Strip(m.View())

	for _, want := range []string{
		"Mar 16 to Mar 22, 2026",
		"Mon 16",
		"Wed 18",
		"Sun 22",
		"06:00",
		"09:00",
		"Deep work",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_TwelveHourGutter(t *testing.T) {
	setTrueColor(t)
	m := newTestModel(t)
	m.config.Calendar.TimeFormat = "12h"

	out := ansi.Strip(m.View())
	if !strings.Contains(out, "6am") {
		t.Error("12h gutter missing 6am label")
	}
	if strings.Contains(out, "06:00") {
		t.Error("12h gutter still shows 24h labels")
	}
}

func TestView_ScrollHidesEarlyRows(t *testing.T) {
	setTrueColor(t)
	m := newTestModel(t)

	m.scrollBy(8) // two hours down

	out := ansi.Strip(m.View())
	if strings.Contains(out, "06:00") {
		t.Error("scrolled view still shows 06:00")
	}
	if !strings.Contains(out, "08:00") {
		t.Error("scrolled view missing 08:00")
	}
}

func TestFormatGutterTime(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		format  string
		minutes int
		want    string
	}{
		{"24h", 6 * 60, "06:00"},
		{"24h", 15 * 60, "15:00"},
		{"12h", 6 * 60, "6am"},
		{"12h", 12 * 60, "12pm"},
		{"12h", 15 * 60, "3pm"},
	}
	for _, tt := range tests {
		m.config.Calendar.TimeFormat = tt.format
		if got := m.formatGutterTime(tt.minutes); got != tt.want {
			t.Errorf("formatGutterTime(%d) in %s = %q, want %q", tt.minutes, tt.format, got, tt.want)
		}
	}
}

func TestPadTo(t *testing.T) {
	if got := padTo("abc", 6); got != "abc   " {
		t.Errorf("padTo pad = %q", got)
	}
	if got := padTo("abcdefgh", 5); got != "abcd…" {
		t.Errorf("padTo truncate = %q", got)
	}
	if got := padTo("", 3); got != "   " {
		t.Errorf("padTo empty = %q", got)
	}
}

func TestBuildDayAudit(t *testing.T) {
	date := time.Date(2026, 3, 18, 0, 0, 0, 0, time.Local)

	a := mustBlock(t, "Writing", "2026-03-18", "09:00", "11:00")
	a.Energy = block.EnergyGives
	b := mustBlock(t, "Standup", "2026-03-18", "11:00", "11:15")
	b.Source = block.SourceExternal

	out := buildDayAudit(date, []*block.TimeBlock{a, b})

	for _, want := range []string{
		"Wednesday, Mar 18 2026",
		"09:00-11:00  Writing [q2, gives]",
		"11:00-11:15  Standup (calendar)",
		"q2: 2h",
		"Total: 2h15m",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("audit missing %q in:\n%s", want, out)
		}
	}
}

func TestBuildDayAudit_Empty(t *testing.T) {
	out := buildDayAudit(time.Date(2026, 3, 18, 0, 0, 0, 0, time.Local), nil)
	if !strings.Contains(out, "No blocks logged.") {
		t.Errorf("empty audit = %q", out)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{30, "30m"},
		{60, "1h"},
		{135, "2h15m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.mins); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}
