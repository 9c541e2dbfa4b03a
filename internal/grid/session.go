package grid

import (
	"errors"
	"math"
	"time"

	"github.com/palisadeengineering/timeaudit/internal/block"
)

// Tracker errors.
var (
	ErrGestureActive  = errors.New("another gesture is already active")
	ErrNoGestureStart = errors.New("pointer position does not start a gesture")
)

const (
	// DefaultMinDragDistance is the pointer travel (in grid units) required
	// before a press is treated as a drag rather than a click.
	DefaultMinDragDistance = 3.0
	// DefaultMinHoldDelay is the hold time required before a press is
	// treated as a drag rather than a click.
	DefaultMinHoldDelay = 150 * time.Millisecond
)

// State is the gesture state machine state.
type State int

const (
	StateIdle State = iota
	StateSelecting
	StateDragging
	StateResizing
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// HitKind describes what the pointer landed on at press time.
// Hit testing belongs to the renderer, which knows where blocks are drawn;
// the tracker only needs the classification.
type HitKind int

const (
	HitEmpty HitKind = iota
	HitBlock
	HitResizeHandle
)

// Hit is the press-time hit test result.
type Hit struct {
	Kind  HitKind
	Block *block.TimeBlock // set for HitBlock and HitResizeHandle
}

// PointerEvent is a generic pointer sample, independent of the input
// library driving the tracker.
type PointerEvent struct {
	X, Y float64
	Time time.Time
}

// DragSession is the ephemeral state of one in-progress gesture. All fields
// the gesture accumulates live here explicitly so previews and commits are
// auditable; nothing is captured in closures.
type DragSession struct {
	Block *block.TimeBlock // nil while selecting an empty range

	// Anchor: the slot where the gesture started (create) or the block's
	// original position (move/resize).
	AnchorDay     int
	AnchorMinutes int

	// Duration of the grabbed block in minutes. Fixed for the whole move
	// gesture: moving never changes duration.
	Duration int

	// Resize bookkeeping: the original end and the live preview end.
	OriginalEnd int
	PreviewEnd  int

	// Last successfully computed drop slot. Recomputed fresh from every
	// pointer sample, so a stale earlier computation can never overwrite a
	// later one.
	CurDay       int
	CurMinutes   int
	HasValidSlot bool

	armed  bool
	downX  float64
	downY  float64
	downAt time.Time
}

// CreateProposal asks the collaborator to create a block.
type CreateProposal struct {
	Date  time.Time
	Start string
	End   string
}

// MoveProposal asks the collaborator to reschedule a block.
type MoveProposal struct {
	BlockID string
	Date    time.Time
	Start   string
	End     string
}

// ResizeProposal asks the collaborator to change a block's end time.
type ResizeProposal struct {
	BlockID string
	NewEnd  string
}

// Click is emitted when a press never crossed the drag activation
// thresholds: a tap on a block opens its edit view, a tap on an empty slot
// opens quick-add at that slot.
type Click struct {
	Block   *block.TimeBlock // nil for empty-slot clicks
	Day     int
	Minutes int
}

// Result carries at most one finalized outcome of a gesture.
// All fields nil means the gesture was abandoned with no mutation.
type Result struct {
	Create *CreateProposal
	Move   *MoveProposal
	Resize *ResizeProposal
	Click  *Click
}

// Empty reports whether the gesture produced no outcome.
func (r Result) Empty() bool {
	return r.Create == nil && r.Move == nil && r.Resize == nil && r.Click == nil
}

// NeighborSource provides the committed intervals on a day, used by the
// snap resolver on drop. excludeID removes the block being moved from its
// own neighbor set.
type NeighborSource interface {
	IntervalsOn(day int, excludeID string) []Interval
}

// NeighborFunc adapts a function to the NeighborSource interface.
type NeighborFunc func(day int, excludeID string) []Interval

// IntervalsOn implements NeighborSource.
func (f NeighborFunc) IntervalsOn(day int, excludeID string) []Interval {
	return f(day, excludeID)
}

// Tracker is the pointer-interaction state machine. One gesture may be
// active at a time; attempts to start a second are rejected until the
// active session resolves. The tracker never mutates blocks itself; it
// emits proposals as pure data on pointer release.
type Tracker struct {
	cfg    Config
	mapper Mapper

	state   State
	session *DragSession

	rect   Rect
	scroll float64

	minDragDistance float64
	minHoldDelay    time.Duration
}

// NewTracker creates an idle gesture tracker.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		cfg:             cfg,
		mapper:          NewMapper(cfg),
		state:           StateIdle,
		minDragDistance: DefaultMinDragDistance,
		minHoldDelay:    DefaultMinHoldDelay,
	}
}

// SetConfig replaces the grid configuration (e.g. after week navigation).
// Any active gesture is cancelled.
func (t *Tracker) SetConfig(cfg Config) {
	t.cfg = cfg
	t.mapper = NewMapper(cfg)
	t.Cancel()
}

// SetViewport updates the grid bounds and scroll offset the tracker uses to
// interpret pointer coordinates.
func (t *Tracker) SetViewport(rect Rect, scroll float64) {
	t.rect = rect
	t.scroll = scroll
}

// SetActivation overrides the drag activation thresholds.
func (t *Tracker) SetActivation(distance float64, delay time.Duration) {
	t.minDragDistance = distance
	t.minHoldDelay = delay
}

// State returns the current gesture state.
func (t *Tracker) State() State {
	return t.state
}

// Active reports whether a gesture session is in progress.
func (t *Tracker) Active() bool {
	return t.state != StateIdle
}

// Session returns the live session for preview rendering, or nil when idle.
func (t *Tracker) Session() *DragSession {
	return t.session
}

// Mapper returns the tracker's coordinate mapper.
func (t *Tracker) Mapper() Mapper {
	return t.mapper
}

// PointerDown starts a gesture. hit classifies what is under the pointer.
// Returns ErrGestureActive while another session is live and
// ErrNoGestureStart when the position cannot begin a gesture (e.g. a press
// on the time gutter with nothing grabbed).
func (t *Tracker) PointerDown(ev PointerEvent, hit Hit) error {
	if t.state != StateIdle {
		return ErrGestureActive
	}

	day, minutes, ok := t.mapper.PointerToSlot(ev.X, ev.Y, t.rect, t.scroll)

	switch hit.Kind {
	case HitEmpty:
		if !ok {
			return ErrNoGestureStart
		}
		t.state = StateSelecting
		t.session = &DragSession{
			AnchorDay:     day,
			AnchorMinutes: minutes,
			CurDay:        day,
			CurMinutes:    minutes,
			HasValidSlot:  true,
			downX:         ev.X,
			downY:         ev.Y,
			downAt:        ev.Time,
		}

	case HitBlock:
		if hit.Block == nil {
			return ErrNoGestureStart
		}
		origDay := t.cfg.DateToDayIndex(hit.Block.Date)
		t.state = StateDragging
		t.session = &DragSession{
			Block:         hit.Block,
			AnchorDay:     origDay,
			AnchorMinutes: hit.Block.StartMinutes(),
			Duration:      hit.Block.Duration(),
			CurDay:        origDay,
			CurMinutes:    hit.Block.StartMinutes(),
			HasValidSlot:  origDay >= 0,
			downX:         ev.X,
			downY:         ev.Y,
			downAt:        ev.Time,
		}

	case HitResizeHandle:
		if hit.Block == nil {
			return ErrNoGestureStart
		}
		// Handles are suppressed for single-slot blocks; guard anyway.
		if hit.Block.Duration() <= t.cfg.Granularity() {
			return ErrNoGestureStart
		}
		origDay := t.cfg.DateToDayIndex(hit.Block.Date)
		t.state = StateResizing
		t.session = &DragSession{
			Block:         hit.Block,
			AnchorDay:     origDay,
			AnchorMinutes: hit.Block.StartMinutes(),
			Duration:      hit.Block.Duration(),
			OriginalEnd:   hit.Block.EndMinutes(),
			PreviewEnd:    hit.Block.EndMinutes(),
			// Grabbing the handle is unambiguous; arm immediately.
			armed:  true,
			downX:  ev.X,
			downY:  ev.Y,
			downAt: ev.Time,
		}

	default:
		return ErrNoGestureStart
	}

	return nil
}

// PointerMove feeds a pointer sample into the active session. The preview
// state is recomputed entirely from this sample, keeping updates monotonic
// in event order. Samples arriving while idle are ignored.
func (t *Tracker) PointerMove(ev PointerEvent) {
	s := t.session
	if t.state == StateIdle || s == nil {
		return
	}

	if !s.armed {
		dist := math.Hypot(ev.X-s.downX, ev.Y-s.downY)
		held := ev.Time.Sub(s.downAt)
		if dist >= t.minDragDistance && held >= t.minHoldDelay {
			s.armed = true
		}
	}

	switch t.state {
	case StateSelecting:
		day, minutes, ok := t.mapper.PointerToSlot(ev.X, ev.Y, t.rect, t.scroll)
		if !ok {
			return
		}
		// Cross-day selection collapses to the anchor's day; only the time
		// component follows the pointer.
		_ = day
		s.CurDay = s.AnchorDay
		s.CurMinutes = minutes
		s.HasValidSlot = true

	case StateDragging:
		day, minutes, ok := t.mapper.PointerToSlot(ev.X, ev.Y, t.rect, t.scroll)
		if !ok {
			return
		}
		s.CurDay = day
		s.CurMinutes = minutes
		s.HasValidSlot = true

	case StateResizing:
		g := t.cfg.Granularity()
		deltaY := ev.Y - s.downY
		deltaMinutes := int(math.Round(deltaY/t.cfg.HourHeight*60.0/float64(g))) * g

		newEnd := s.OriginalEnd + deltaMinutes
		minEnd := s.AnchorMinutes + g
		if newEnd < minEnd {
			newEnd = minEnd
		}
		if newEnd > t.cfg.WindowEnd() {
			newEnd = t.cfg.WindowEnd()
		}
		s.PreviewEnd = newEnd
	}
}

// PointerUp finalizes the gesture and returns its outcome. The tracker
// always returns to Idle, whatever the outcome: a failed or abandoned
// gesture never leaves a dangling session.
func (t *Tracker) PointerUp(ev PointerEvent, neighbors NeighborSource) Result {
	s := t.session
	state := t.state
	t.reset()

	if state == StateIdle || s == nil {
		return Result{}
	}

	// Feed the final sample through the same path as any other move so the
	// release position participates in the preview computation.
	t.state = state
	t.session = s
	t.PointerMove(ev)
	t.reset()

	switch state {
	case StateSelecting:
		return t.finishSelect(s)
	case StateDragging:
		return t.finishMove(s, neighbors)
	case StateResizing:
		return t.finishResize(s)
	}
	return Result{}
}

// Cancel abandons any active gesture with no mutation (Escape, focus loss).
func (t *Tracker) Cancel() {
	t.reset()
}

func (t *Tracker) reset() {
	t.state = StateIdle
	t.session = nil
}

func (t *Tracker) finishSelect(s *DragSession) Result {
	if !s.armed {
		return Result{Click: &Click{Day: s.AnchorDay, Minutes: s.AnchorMinutes}}
	}
	if !s.HasValidSlot {
		return Result{}
	}

	g := t.cfg.Granularity()
	lo := min(s.AnchorMinutes, s.CurMinutes)
	hi := max(s.AnchorMinutes, s.CurMinutes)
	// A single-slot drag still produces one granularity unit of duration.
	hi += g
	if hi > t.cfg.WindowEnd() {
		hi = t.cfg.WindowEnd()
	}
	if hi-lo < g {
		lo = hi - g
	}

	return Result{Create: &CreateProposal{
		Date:  t.cfg.DayIndexToDate(s.AnchorDay),
		Start: block.MinutesToTime(lo),
		End:   block.MinutesToTime(hi),
	}}
}

func (t *Tracker) finishMove(s *DragSession, neighbors NeighborSource) Result {
	if !s.armed {
		return Result{Click: &Click{Block: s.Block, Day: s.AnchorDay, Minutes: s.AnchorMinutes}}
	}
	// Release outside the grid falls back to the last valid computed slot;
	// with no valid slot at all the gesture is abandoned.
	if !s.HasValidSlot || s.Block == nil {
		return Result{}
	}

	var ivs []Interval
	if neighbors != nil {
		ivs = neighbors.IntervalsOn(s.CurDay, s.Block.ID)
	}
	start := Snap(s.CurMinutes, s.Duration, ivs, t.cfg)

	// Idempotent no-op: dropping a block where it already is emits nothing.
	if s.CurDay == s.AnchorDay && start == s.AnchorMinutes {
		return Result{}
	}

	return Result{Move: &MoveProposal{
		BlockID: s.Block.ID,
		Date:    t.cfg.DayIndexToDate(s.CurDay),
		Start:   block.MinutesToTime(start),
		End:     block.MinutesToTime(start + s.Duration),
	}}
}

func (t *Tracker) finishResize(s *DragSession) Result {
	if s.Block == nil || s.PreviewEnd == s.OriginalEnd {
		return Result{}
	}
	return Result{Resize: &ResizeProposal{
		BlockID: s.Block.ID,
		NewEnd:  block.MinutesToTime(s.PreviewEnd),
	}}
}
