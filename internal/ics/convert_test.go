package ics

import (
	"testing"
	"time"

	"github.com/palisadeengineering/timeaudit/internal/block"
)

func TestBlocks_SameDay(t *testing.T) {
	occ := Occurrence{
		EventUID: "evt-1",
		Summary:  "Team sync",
		Start:    time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
	}

	blocks := Blocks([]Occurrence{occ})
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}

	b := blocks[0]
	if b.Start != "09:00" || b.End != "10:00" {
		t.Errorf("times = %s-%s, want 09:00-10:00", b.Start, b.End)
	}
	if b.DateKey() != "2026-03-16" {
		t.Errorf("DateKey = %s, want 2026-03-16", b.DateKey())
	}
	if b.Source != block.SourceExternal {
		t.Errorf("Source = %s, want external", b.Source)
	}
	if b.ExternalEventID == "" {
		t.Error("ExternalEventID is empty")
	}
	if b.ActivityName != "Team sync" {
		t.Errorf("ActivityName = %q", b.ActivityName)
	}
}

func TestBlocks_SplitsAtMidnight(t *testing.T) {
	occ := Occurrence{
		EventUID: "evt-1",
		Summary:  "Red-eye flight",
		Start:    time.Date(2026, 3, 16, 23, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 3, 17, 1, 0, 0, 0, time.UTC),
	}

	blocks := Blocks([]Occurrence{occ})
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}

	first, second := blocks[0], blocks[1]
	if first.DateKey() != "2026-03-16" || first.Start != "23:00" || first.End != "24:00" {
		t.Errorf("first = %s %s-%s, want 2026-03-16 23:00-24:00",
			first.DateKey(), first.Start, first.End)
	}
	if second.DateKey() != "2026-03-17" || second.Start != "00:00" || second.End != "01:00" {
		t.Errorf("second = %s %s-%s, want 2026-03-17 00:00-01:00",
			second.DateKey(), second.Start, second.End)
	}
	if first.ExternalEventID == second.ExternalEventID {
		t.Error("split segments share an external event ID")
	}
}

func TestBlocks_EndsExactlyAtMidnight(t *testing.T) {
	occ := Occurrence{
		EventUID: "evt-1",
		Summary:  "Late show",
		Start:    time.Date(2026, 3, 16, 22, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
	}

	blocks := Blocks([]Occurrence{occ})
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].End != "24:00" {
		t.Errorf("End = %s, want 24:00", blocks[0].End)
	}
}

func TestBlocks_UntitledEvent(t *testing.T) {
	occ := Occurrence{
		EventUID: "evt-1",
		Start:    time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
	}

	blocks := Blocks([]Occurrence{occ})
	if blocks[0].ActivityName != "(untitled event)" {
		t.Errorf("ActivityName = %q, want placeholder", blocks[0].ActivityName)
	}
}

func TestBlocks_StableKeysAcrossRuns(t *testing.T) {
	occ := Occurrence{
		EventUID: "evt-1",
		Summary:  "Team sync",
		Start:    time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
	}

	a := Blocks([]Occurrence{occ})
	b := Blocks([]Occurrence{occ})
	if a[0].ExternalEventID != b[0].ExternalEventID {
		t.Errorf("keys differ across runs: %s vs %s", a[0].ExternalEventID, b[0].ExternalEventID)
	}
}
