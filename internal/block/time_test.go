package block

import "testing"

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"23:59", 1439},
		{"24:00", 1440},
		{"bad", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := TimeToMinutes(tt.input); got != tt.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "00:00"},
		{570, "09:30"},
		{1439, "23:59"},
		{1440, "24:00"},
		{-10, "00:00"},
		{2000, "24:00"},
	}

	for _, tt := range tests {
		if got := MinutesToTime(tt.input); got != tt.want {
			t.Errorf("MinutesToTime(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRoundTripAtQuarterHours(t *testing.T) {
	for m := 0; m < 24*60; m += 15 {
		if got := TimeToMinutes(MinutesToTime(m)); got != m {
			t.Fatalf("round trip failed at %d: got %d", m, got)
		}
	}
}

func TestTimesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 string
		want                       bool
	}{
		{"disjoint", "09:00", "10:00", "10:00", "11:00", false},
		{"overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimesOverlap(tt.start1, tt.end1, tt.start2, tt.end2); got != tt.want {
				t.Errorf("TimesOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapMinutes(t *testing.T) {
	if got := OverlapMinutes("09:00", "10:00", "09:30", "10:30"); got != 30 {
		t.Errorf("OverlapMinutes = %d, want 30", got)
	}
	if got := OverlapMinutes("09:00", "10:00", "10:00", "11:00"); got != 0 {
		t.Errorf("OverlapMinutes disjoint = %d, want 0", got)
	}
}
