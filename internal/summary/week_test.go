package summary

import (
	"testing"
	"time"

	"github.com/palisadeengineering/timeaudit/internal/block"
)

func mustBlock(t *testing.T, name, quadrant, energy, date, start, end string) *block.TimeBlock {
	t.Helper()
	b, err := block.New(name, quadrant, energy, date, start, end)
	if err != nil {
		t.Fatalf("block.New(%s): %v", name, err)
	}
	return b
}

func TestSummarizeWeek(t *testing.T) {
	// Wednesday; the containing week runs Mon Mar 16 to Sun Mar 22.
	ref := time.Date(2026, 3, 18, 0, 0, 0, 0, time.Local)

	blocks := []*block.TimeBlock{
		mustBlock(t, "Writing", "q2", "gives", "2026-03-16", "09:00", "11:00"),
		mustBlock(t, "Email", "q3", "drains", "2026-03-17", "10:00", "10:30"),
		mustBlock(t, "Next week", "q2", "gives", "2026-03-23", "09:00", "10:00"),
	}

	external := mustBlock(t, "Standup", "q4", "neutral", "2026-03-16", "12:00", "12:15")
	external.Source = block.SourceExternal
	blocks = append(blocks, external)

	s := SummarizeWeek(ref, time.Monday, blocks)

	if got := s.Start.Format("2006-01-02"); got != "2026-03-16" {
		t.Fatalf("start = %s, want 2026-03-16", got)
	}
	if got := s.End.Format("2006-01-02"); got != "2026-03-22" {
		t.Fatalf("end = %s, want 2026-03-22", got)
	}
	if len(s.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(s.Blocks))
	}

	if s.Stats.TotalMinutes != 165 {
		t.Errorf("total minutes = %d, want 165", s.Stats.TotalMinutes)
	}
	if s.Stats.ExternalMinutes != 15 {
		t.Errorf("external minutes = %d, want 15", s.Stats.ExternalMinutes)
	}
	if s.Stats.QuadrantMinutes[block.QuadrantQ2] != 120 {
		t.Errorf("q2 minutes = %d, want 120", s.Stats.QuadrantMinutes[block.QuadrantQ2])
	}
	if s.Stats.QuadrantMinutes[block.QuadrantQ3] != 30 {
		t.Errorf("q3 minutes = %d, want 30", s.Stats.QuadrantMinutes[block.QuadrantQ3])
	}
	if s.Stats.EnergyMinutes[block.EnergyGives] != 120 {
		t.Errorf("gives minutes = %d, want 120", s.Stats.EnergyMinutes[block.EnergyGives])
	}
}

func TestEnergyBalance(t *testing.T) {
	ref := time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local)

	s := SummarizeWeek(ref, time.Monday, []*block.TimeBlock{
		mustBlock(t, "Run", "q2", "gives", "2026-03-16", "07:00", "08:00"),
		mustBlock(t, "Meetings", "q3", "drains", "2026-03-16", "13:00", "13:30"),
	})

	if got := s.EnergyBalance(); got != 30 {
		t.Errorf("energy balance = %d, want 30", got)
	}
}

func TestBusiestDay(t *testing.T) {
	ref := time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local)

	s := SummarizeWeek(ref, time.Monday, []*block.TimeBlock{
		mustBlock(t, "Short", "q2", "neutral", "2026-03-16", "09:00", "09:30"),
		mustBlock(t, "Long", "q2", "neutral", "2026-03-19", "09:00", "13:00"),
	})

	// Thursday is day offset 3.
	if got := s.BusiestDay(); got != 3 {
		t.Errorf("busiest day = %d, want 3", got)
	}
}

func TestBusiestDay_EmptyWeek(t *testing.T) {
	s := SummarizeWeek(time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local), time.Monday, nil)
	if got := s.BusiestDay(); got != -1 {
		t.Errorf("busiest day of empty week = %d, want -1", got)
	}
}
