// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Subtle highlight, empty slots under cursor
	BgSelection string `toml:"bg_selection"` // Drag selection preview
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Gutter times, muted elements
	Accent      string `toml:"accent"`       // Title, borders, today header

	// Quadrant colors for live blocks.
	Q1 string `toml:"q1"` // urgent and important
	Q2 string `toml:"q2"` // not urgent, important
	Q3 string `toml:"q3"` // urgent, not important
	Q4 string `toml:"q4"` // neither

	External string `toml:"external"` // imported calendar events
	Warning  string `toml:"warning"`  // errors, conflicts
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}

	return &t, nil
}

// Quadrant returns the color for a quadrant key ("q1".."q4").
// Unknown keys get the muted foreground.
func (t *Theme) Quadrant(q string) string {
	switch strings.ToLower(q) {
	case "q1":
		return t.Q1
	case "q2":
		return t.Q2
	case "q3":
		return t.Q3
	case "q4":
		return t.Q4
	default:
		return t.FgMuted
	}
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
