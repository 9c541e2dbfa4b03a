package grid

import (
	"testing"
	"time"
)

// testGridConfig returns a grid showing 06:00-22:00 across one week.
// HourHeight 60 makes one grid unit equal one minute, which keeps the
// arithmetic in tests easy to follow.
func testGridConfig() Config {
	return Config{
		StartHour:          6,
		EndHour:            21,
		GranularityMinutes: 15,
		HourHeight:         60,
		GutterWidth:        60,
		NumDays:            7,
		FirstDate:          time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), // a Monday
	}
}

func TestMapper_RoundTrip(t *testing.T) {
	m := NewMapper(testGridConfig())
	cfg := m.Config()

	for mins := cfg.WindowStart(); mins < cfg.WindowEnd(); mins += cfg.Granularity() {
		offset := m.TimeToOffset(mins)
		got := m.OffsetToTime(offset)
		if got != mins {
			t.Fatalf("round trip failed at %d minutes: offset %.1f -> %d", mins, offset, got)
		}
	}
}

func TestMapper_TimeToOffset(t *testing.T) {
	m := NewMapper(testGridConfig())

	tests := []struct {
		name    string
		minutes int
		want    float64
	}{
		{name: "window start", minutes: 6 * 60, want: 0},
		{name: "one hour in", minutes: 7 * 60, want: 60},
		{name: "quarter past", minutes: 7*60 + 15, want: 75},
		{name: "before window clamps", minutes: 4 * 60, want: 0},
		{name: "after window clamps", minutes: 23 * 60, want: 16 * 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.TimeToOffset(tt.minutes); got != tt.want {
				t.Errorf("TimeToOffset(%d) = %.1f, want %.1f", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestMapper_OffsetToTime_SnapsDown(t *testing.T) {
	m := NewMapper(testGridConfig())

	tests := []struct {
		name   string
		offset float64
		want   int
	}{
		{name: "exact slot", offset: 0, want: 6 * 60},
		{name: "mid slot snaps down", offset: 14, want: 6 * 60},
		{name: "next slot", offset: 15, want: 6*60 + 15},
		{name: "just under next slot", offset: 29.9, want: 6*60 + 15},
		{name: "negative clamps to first slot", offset: -40, want: 6 * 60},
		{name: "past end clamps to last slot", offset: 10000, want: 22*60 - 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.OffsetToTime(tt.offset); got != tt.want {
				t.Errorf("OffsetToTime(%.1f) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestMapper_PointerToSlot(t *testing.T) {
	m := NewMapper(testGridConfig())
	// Gutter 60 wide, 7 columns of 100 each.
	rect := Rect{X: 0, Y: 0, Width: 60 + 7*100, Height: 400}

	tests := []struct {
		name     string
		x, y     float64
		scroll   float64
		wantDay  int
		wantMins int
		wantOK   bool
	}{
		{name: "first column top", x: 61, y: 0, wantDay: 0, wantMins: 6 * 60, wantOK: true},
		{name: "third column", x: 60 + 250, y: 75, wantDay: 2, wantMins: 7*60 + 15, wantOK: true},
		{name: "last column", x: 60 + 650, y: 0, wantDay: 6, wantMins: 6 * 60, wantOK: true},
		{name: "over the gutter", x: 30, y: 100, wantOK: false},
		{name: "just left of day area resolves via tolerance", x: 55, y: 0, wantDay: 0, wantMins: 6 * 60, wantOK: true},
		{name: "just right of grid resolves via tolerance", x: 60 + 700 + 5, y: 0, wantDay: 6, wantMins: 6 * 60, wantOK: true},
		{name: "far right of grid rejected", x: 60 + 700 + 50, y: 0, wantOK: false},
		{name: "scroll shifts time", x: 61, y: 0, scroll: 120, wantDay: 0, wantMins: 8 * 60, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, mins, ok := m.PointerToSlot(tt.x, tt.y, rect, tt.scroll)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if day != tt.wantDay || mins != tt.wantMins {
				t.Errorf("PointerToSlot = (%d, %d), want (%d, %d)", day, mins, tt.wantDay, tt.wantMins)
			}
		})
	}
}

func TestMapper_Deterministic(t *testing.T) {
	m := NewMapper(testGridConfig())
	rect := Rect{Width: 760, Height: 400}
	for i := 0; i < 3; i++ {
		day, mins, ok := m.PointerToSlot(200, 133, rect, 0)
		if !ok || day != 1 || mins != 8*60 {
			t.Fatalf("run %d: PointerToSlot = (%d, %d, %v), want (1, %d, true)", i, day, mins, ok, 8*60)
		}
	}
}

func TestConfig_DayIndexConversion(t *testing.T) {
	cfg := testGridConfig()

	for day := 0; day < cfg.NumDays; day++ {
		date := cfg.DayIndexToDate(day)
		if got := cfg.DateToDayIndex(date); got != day {
			t.Errorf("day %d -> %s -> %d", day, date.Format("2006-01-02"), got)
		}
	}

	if got := cfg.DateToDayIndex(cfg.FirstDate.AddDate(0, 0, -1)); got != -1 {
		t.Errorf("date before range = %d, want -1", got)
	}
	if got := cfg.DateToDayIndex(cfg.FirstDate.AddDate(0, 0, 7)); got != -1 {
		t.Errorf("date after range = %d, want -1", got)
	}
}
