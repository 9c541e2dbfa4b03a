package ui

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h30m"},
		{605, "10h05m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.mins); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}

func TestQuadrantBar(t *testing.T) {
	if got := quadrantBar(50, 100, 10); got != "█████░░░░░" {
		t.Errorf("quadrantBar(50, 100, 10) = %q", got)
	}
	if got := quadrantBar(0, 100, 10); got != "░░░░░░░░░░" {
		t.Errorf("quadrantBar(0, 100, 10) = %q", got)
	}
	if got := quadrantBar(10, 0, 10); got != "" {
		t.Errorf("quadrantBar with zero total = %q, want empty", got)
	}
}
