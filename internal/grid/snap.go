package grid

// Interval is a half-open [Start, End) minute range within one day.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// Snap resolves the final start time for a block of the given duration
// dropped at proposedStart, aligning it with the nearest neighboring block
// edge within the snap threshold.
//
// For every neighbor two candidates are considered: placing the block
// immediately after the neighbor (start = neighbor.End) and immediately
// before it (start = neighbor.Start - duration). The globally minimal
// distance across all neighbors and both directions wins; a candidate only
// replaces the current best when its distance is strictly smaller, so the
// first candidate found at a given distance is kept. If no candidate falls
// inside the threshold the proposed start is used unchanged.
//
// The resolved start is clamped so the whole interval stays inside the
// visible window, pulling the start back if the end would overflow.
func Snap(proposedStart, duration int, neighbors []Interval, cfg Config) int {
	threshold := cfg.snapThreshold()
	proposedEnd := proposedStart + duration

	best := proposedStart
	bestDist := threshold + 1

	for _, n := range neighbors {
		// Snap after the neighbor: our start aligns with its end.
		if d := abs(proposedStart - n.End); d <= threshold && d < bestDist {
			bestDist = d
			best = n.End
		}
		// Snap before the neighbor: our end aligns with its start.
		if d := abs(proposedEnd - n.Start); d <= threshold && d < bestDist {
			bestDist = d
			best = n.Start - duration
		}
	}

	return clampToWindow(best, duration, cfg)
}

// clampToWindow keeps [start, start+duration) inside the visible window.
// If the duration exceeds the window the start pins to the window start.
func clampToWindow(start, duration int, cfg Config) int {
	if start+duration > cfg.WindowEnd() {
		start = cfg.WindowEnd() - duration
	}
	if start < cfg.WindowStart() {
		start = cfg.WindowStart()
	}
	return start
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
