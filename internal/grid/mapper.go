package grid

// Rect describes the on-screen bounds of the grid area, in the same units
// as pointer coordinates (pixels in a browser, cells in a terminal).
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Mapper converts between wall-clock time and grid coordinates.
// It is pure and stateless: identical inputs always produce identical
// outputs, so interaction handling and static rendering agree exactly.
type Mapper struct {
	cfg Config
}

// NewMapper creates a Mapper for the given grid configuration.
func NewMapper(cfg Config) Mapper {
	return Mapper{cfg: cfg}
}

// Config returns the mapper's grid configuration.
func (m Mapper) Config() Config {
	return m.cfg
}

// TimeToOffset converts minutes-since-midnight to a vertical offset from the
// top of the grid. Times outside the visible window clamp to its bounds.
func (m Mapper) TimeToOffset(minutes int) float64 {
	if minutes < m.cfg.WindowStart() {
		minutes = m.cfg.WindowStart()
	}
	if minutes > m.cfg.WindowEnd() {
		minutes = m.cfg.WindowEnd()
	}
	return float64(minutes-m.cfg.WindowStart()) / 60.0 * m.cfg.HourHeight
}

// OffsetToTime converts a vertical offset back to minutes-since-midnight,
// snapped down to the nearest granularity boundary. The result is clamped so
// it always names a valid slot start: hours before the window map to the
// first slot, hours at or past the window end map to the last slot.
func (m Mapper) OffsetToTime(offset float64) int {
	g := m.cfg.Granularity()
	minutes := m.cfg.WindowStart() + int(offset/m.cfg.HourHeight*60.0)

	// Snap down to granularity.
	if minutes >= 0 {
		minutes -= minutes % g
	}

	if minutes < m.cfg.WindowStart() {
		return m.cfg.WindowStart()
	}
	lastSlot := m.cfg.WindowEnd() - g
	if minutes > lastSlot {
		return lastSlot
	}
	return minutes
}

// DayColumnWidth returns the width of one day column for a grid of the
// given total width.
func (m Mapper) DayColumnWidth(gridWidth float64) float64 {
	if m.cfg.NumDays <= 0 {
		return 0
	}
	return (gridWidth - m.cfg.GutterWidth) / float64(m.cfg.NumDays)
}

// PointerToSlot resolves a pointer position to a (day column, slot start)
// pair. scroll is the vertical scroll offset of the grid content.
//
// Positions over the time gutter or outside the grid do not resolve, except
// within the edge tolerance: a pointer just past a boundary still resolves
// to the nearest valid column, so drops near an edge are not rejected.
func (m Mapper) PointerToSlot(x, y float64, rect Rect, scroll float64) (day int, minutes int, ok bool) {
	tol := m.cfg.edgeTolerance()
	colWidth := m.DayColumnWidth(rect.Width)
	if colWidth <= 0 {
		return 0, 0, false
	}

	relX := x - rect.X - m.cfg.GutterWidth
	maxX := colWidth * float64(m.cfg.NumDays)
	if relX < -tol || relX > maxX+tol {
		return 0, 0, false
	}

	day = int(relX / colWidth)
	if day < 0 {
		day = 0
	}
	if day >= m.cfg.NumDays {
		day = m.cfg.NumDays - 1
	}

	relY := y - rect.Y + scroll
	if relY < -tol || relY > m.TimeToOffset(m.cfg.WindowEnd())+tol {
		return 0, 0, false
	}

	return day, m.OffsetToTime(relY), true
}
