package grid

import "testing"

func TestSnap_ToNeighborEnd(t *testing.T) {
	cfg := testGridConfig()
	// Neighbor 09:00-10:00; a 30-minute block proposed at 09:55 snaps to
	// start right after the neighbor at 10:00 (distance 5).
	neighbors := []Interval{{Start: 9 * 60, End: 10 * 60}}

	got := Snap(9*60+55, 30, neighbors, cfg)
	if got != 10*60 {
		t.Errorf("Snap = %d, want %d", got, 10*60)
	}
}

func TestSnap_ToNeighborStart(t *testing.T) {
	cfg := testGridConfig()
	// Neighbor starts at 11:00; a 30-minute block proposed at 10:40 has its
	// end (11:10) within threshold of the neighbor's start, so it lands
	// back-to-back at 10:30.
	neighbors := []Interval{{Start: 11 * 60, End: 12 * 60}}

	got := Snap(10*60+40, 30, neighbors, cfg)
	if got != 10*60+30 {
		t.Errorf("Snap = %d, want %d", got, 10*60+30)
	}
}

func TestSnap_GlobalMinimumWins(t *testing.T) {
	cfg := testGridConfig()
	// Two neighbors within threshold: one edge 25 minutes away, one 10.
	// The globally closest edge must win regardless of scan order.
	proposed := 12 * 60
	neighbors := []Interval{
		{Start: 10 * 60, End: proposed - 25}, // snap-after candidate, distance 25
		{Start: proposed + 40, End: 14 * 60}, // snap-before: end 12:30 vs 12:40, distance 10
	}

	got := Snap(proposed, 30, neighbors, cfg)
	want := proposed + 40 - 30 // neighbor.Start - duration
	if got != want {
		t.Errorf("Snap = %d, want %d", got, want)
	}
}

func TestSnap_NoNeighborWithinThreshold(t *testing.T) {
	cfg := testGridConfig()
	proposed := 12 * 60
	neighbors := []Interval{
		{Start: 8 * 60, End: 9 * 60},
		{Start: 15 * 60, End: 16 * 60},
	}

	if got := Snap(proposed, 30, neighbors, cfg); got != proposed {
		t.Errorf("Snap = %d, want unsnapped %d", got, proposed)
	}
}

func TestSnap_NoNeighborsAtAll(t *testing.T) {
	cfg := testGridConfig()
	if got := Snap(13*60, 45, nil, cfg); got != 13*60 {
		t.Errorf("Snap = %d, want %d", got, 13*60)
	}
}

func TestSnap_ClampsToWindow(t *testing.T) {
	cfg := testGridConfig()

	t.Run("start before window", func(t *testing.T) {
		if got := Snap(4*60, 30, nil, cfg); got != cfg.WindowStart() {
			t.Errorf("Snap = %d, want %d", got, cfg.WindowStart())
		}
	})

	t.Run("end past window shrinks start", func(t *testing.T) {
		// 60-minute block proposed 30 minutes before the window end.
		got := Snap(cfg.WindowEnd()-30, 60, nil, cfg)
		if got != cfg.WindowEnd()-60 {
			t.Errorf("Snap = %d, want %d", got, cfg.WindowEnd()-60)
		}
	})

	t.Run("snap result clamped too", func(t *testing.T) {
		// Neighbor ends right at the window end; snapping after it would
		// overflow, so the start pulls back inside.
		neighbors := []Interval{{Start: cfg.WindowEnd() - 60, End: cfg.WindowEnd()}}
		got := Snap(cfg.WindowEnd()-10, 30, neighbors, cfg)
		if got != cfg.WindowEnd()-30 {
			t.Errorf("Snap = %d, want %d", got, cfg.WindowEnd()-30)
		}
	})
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "disjoint", a: Interval{540, 600}, b: Interval{600, 660}, want: false},
		{name: "overlapping", a: Interval{540, 600}, b: Interval{570, 630}, want: true},
		{name: "contained", a: Interval{540, 720}, b: Interval{600, 660}, want: true},
		{name: "identical", a: Interval{540, 600}, b: Interval{540, 600}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}
