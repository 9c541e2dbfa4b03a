package grid

import (
	"math"
	"testing"
	"time"

	"github.com/palisadeengineering/timeaudit/internal/block"
)

// makeLayoutBlock creates a minimal block on a fixed day for layout tests.
func makeLayoutBlock(id, start, end string) *block.TimeBlock {
	return &block.TimeBlock{
		ID:           id,
		ActivityName: "Block " + id,
		Date:         time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		Start:        start,
		End:          end,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeDayLayout_Empty(t *testing.T) {
	if got := ComputeDayLayout(nil); len(got) != 0 {
		t.Errorf("layout of no blocks has %d entries", len(got))
	}
}

func TestComputeDayLayout_SingleBlock(t *testing.T) {
	layouts := ComputeDayLayout([]*block.TimeBlock{makeLayoutBlock("a", "09:00", "10:00")})

	l := layouts["a"]
	if l.Column != 0 || l.TotalColumns != 1 {
		t.Errorf("single block layout = %+v, want column 0 of 1", l)
	}
	if !almostEqual(l.WidthPercent, 99.5) {
		t.Errorf("WidthPercent = %v, want 99.5", l.WidthPercent)
	}
	if !almostEqual(l.LeftPercent, 0.25) {
		t.Errorf("LeftPercent = %v, want 0.25", l.LeftPercent)
	}
}

func TestComputeDayLayout_DisjointBlocks(t *testing.T) {
	layouts := ComputeDayLayout([]*block.TimeBlock{
		makeLayoutBlock("a", "09:00", "10:00"),
		makeLayoutBlock("b", "10:00", "11:00"),
	})

	for _, id := range []string{"a", "b"} {
		l := layouts[id]
		if l.Column != 0 || l.TotalColumns != 1 {
			t.Errorf("block %s = %+v, want column 0 of 1", id, l)
		}
	}
}

func TestComputeDayLayout_PairwiseChain(t *testing.T) {
	// A overlaps B, B overlaps C, A does not overlap C. All three land in
	// one group; A and C can share column 0 while B takes column 1.
	layouts := ComputeDayLayout([]*block.TimeBlock{
		makeLayoutBlock("a", "09:00", "10:00"),
		makeLayoutBlock("b", "09:30", "10:30"),
		makeLayoutBlock("c", "10:15", "11:00"),
	})

	la, lb, lc := layouts["a"], layouts["b"], layouts["c"]

	if la.TotalColumns < 2 || lb.TotalColumns < 2 || lc.TotalColumns < 2 {
		t.Fatalf("chain group totalColumns = %d/%d/%d, want >= 2",
			la.TotalColumns, lb.TotalColumns, lc.TotalColumns)
	}
	if la.TotalColumns != lb.TotalColumns || lb.TotalColumns != lc.TotalColumns {
		t.Errorf("group members disagree on totalColumns: %d/%d/%d",
			la.TotalColumns, lb.TotalColumns, lc.TotalColumns)
	}
	if la.Column != 0 {
		t.Errorf("a.Column = %d, want 0", la.Column)
	}
	if lb.Column != 1 {
		t.Errorf("b.Column = %d, want 1", lb.Column)
	}
	// C only directly overlaps B, so column 0 is free for it again.
	if lc.Column != 0 {
		t.Errorf("c.Column = %d, want 0 (reuse across non-overlapping members)", lc.Column)
	}
}

func TestComputeDayLayout_FullTripleOverlap(t *testing.T) {
	layouts := ComputeDayLayout([]*block.TimeBlock{
		makeLayoutBlock("a", "09:00", "10:00"),
		makeLayoutBlock("b", "09:00", "10:00"),
		makeLayoutBlock("c", "09:00", "10:00"),
	})

	seen := make(map[int]bool)
	for _, id := range []string{"a", "b", "c"} {
		l := layouts[id]
		if l.TotalColumns != 3 {
			t.Errorf("block %s totalColumns = %d, want 3", id, l.TotalColumns)
		}
		if seen[l.Column] {
			t.Errorf("column %d assigned twice", l.Column)
		}
		seen[l.Column] = true
		if want := 100.0/3 - 0.5; !almostEqual(l.WidthPercent, want) {
			t.Errorf("block %s WidthPercent = %v, want %v", id, l.WidthPercent, want)
		}
	}
}

func TestComputeDayLayout_LongerBlockAnchorsGroup(t *testing.T) {
	// Same start: the longer (containing) block is placed first and takes
	// column 0; the nested one moves to column 1.
	layouts := ComputeDayLayout([]*block.TimeBlock{
		makeLayoutBlock("short", "09:00", "09:30"),
		makeLayoutBlock("long", "09:00", "11:00"),
	})

	if layouts["long"].Column != 0 {
		t.Errorf("long.Column = %d, want 0", layouts["long"].Column)
	}
	if layouts["short"].Column != 1 {
		t.Errorf("short.Column = %d, want 1", layouts["short"].Column)
	}
}

func TestComputeDayLayout_SeparateGroups(t *testing.T) {
	// A morning pair and an unrelated afternoon block: the afternoon block
	// must not be narrowed by the morning group.
	layouts := ComputeDayLayout([]*block.TimeBlock{
		makeLayoutBlock("m1", "09:00", "10:00"),
		makeLayoutBlock("m2", "09:30", "10:30"),
		makeLayoutBlock("solo", "14:00", "15:00"),
	})

	if layouts["m1"].TotalColumns != 2 || layouts["m2"].TotalColumns != 2 {
		t.Errorf("morning pair totals = %d/%d, want 2/2",
			layouts["m1"].TotalColumns, layouts["m2"].TotalColumns)
	}
	if l := layouts["solo"]; l.Column != 0 || l.TotalColumns != 1 {
		t.Errorf("solo = %+v, want full width", l)
	}
}

func TestComputeDayLayout_LeftPercent(t *testing.T) {
	layouts := ComputeDayLayout([]*block.TimeBlock{
		makeLayoutBlock("a", "09:00", "10:00"),
		makeLayoutBlock("b", "09:00", "10:00"),
	})

	for _, id := range []string{"a", "b"} {
		l := layouts[id]
		want := float64(l.Column)*50.0 + 0.25
		if !almostEqual(l.LeftPercent, want) {
			t.Errorf("block %s LeftPercent = %v, want %v", id, l.LeftPercent, want)
		}
	}
}
