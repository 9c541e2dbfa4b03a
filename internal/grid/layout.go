package grid

import (
	"sort"

	"github.com/palisadeengineering/timeaudit/internal/block"
)

// Layout is the per-block rendering hint produced by ComputeDayLayout.
// Columns are zero-based; widths and offsets are percentages of the day
// column width, with a small gap allowance between adjacent columns.
type Layout struct {
	Column       int
	TotalColumns int
	WidthPercent float64
	LeftPercent  float64
}

// layoutEntry is a block reduced to its interval for grouping.
type layoutEntry struct {
	id       string
	interval Interval
	column   int
}

// overlapGroup is a transitively-connected cluster of overlapping entries.
type overlapGroup struct {
	members []*layoutEntry
}

// overlapsAny reports whether the interval intersects at least one member.
func (g *overlapGroup) overlapsAny(iv Interval) bool {
	for _, m := range g.members {
		if m.interval.Overlaps(iv) {
			return true
		}
	}
	return false
}

// ComputeDayLayout assigns a column layout to every block of a single day so
// concurrent blocks render side-by-side without visual overlap.
//
// Entries are processed in start order, longer blocks first on ties, so a
// containing block anchors its group before nested ones are placed. Each
// entry joins the group it transitively overlaps (a chain A~B~C lands in one
// group even when A and C are disjoint) and takes the lowest column not used
// by any group member it directly overlaps, so disjoint members of the same
// group may share a column.
func ComputeDayLayout(blocks []*block.TimeBlock) map[string]Layout {
	result := make(map[string]Layout, len(blocks))
	if len(blocks) == 0 {
		return result
	}

	entries := make([]*layoutEntry, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		entries = append(entries, &layoutEntry{
			id:       b.ID,
			interval: Interval{Start: b.StartMinutes(), End: b.EndMinutes()},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.interval.Start != b.interval.Start {
			return a.interval.Start < b.interval.Start
		}
		// Longer first, so containing blocks anchor the group.
		return a.interval.End > b.interval.End
	})

	var groups []*overlapGroup
	for _, e := range entries {
		var home *overlapGroup
		for _, g := range groups {
			if g.overlapsAny(e.interval) {
				home = g
				break
			}
		}
		if home == nil {
			home = &overlapGroup{}
			groups = append(groups, home)
		}

		// Lowest column not taken by a directly overlapping member.
		used := make(map[int]bool)
		for _, m := range home.members {
			if m.interval.Overlaps(e.interval) {
				used[m.column] = true
			}
		}
		col := 0
		for used[col] {
			col++
		}
		e.column = col
		home.members = append(home.members, e)
	}

	for _, g := range groups {
		total := 0
		for _, m := range g.members {
			if m.column+1 > total {
				total = m.column + 1
			}
		}
		for _, m := range g.members {
			width := 100.0/float64(total) - 0.5
			left := float64(m.column)*100.0/float64(total) + 0.25
			result[m.id] = Layout{
				Column:       m.column,
				TotalColumns: total,
				WidthPercent: width,
				LeftPercent:  left,
			}
		}
	}

	return result
}
