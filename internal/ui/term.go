package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Q1 (urgent and important): red, it demands attention
	colorQ1 = color.New(color.FgRed, color.Bold)

	// Q2 (not urgent, important): green, where time should go
	colorQ2 = color.New(color.FgGreen)

	// Q3 (urgent, not important): yellow
	colorQ3 = color.New(color.FgYellow)

	// Q4 (neither): dim/grey
	colorQ4 = color.New(color.FgWhite, color.Faint)

	// External calendar events: cyan
	colorExternal = color.New(color.FgCyan)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatQuadrant colors text by its quadrant key (q1..q4).
func formatQuadrant(q, s string) string {
	switch q {
	case "q1":
		return colorQ1.Sprint(s)
	case "q2":
		return colorQ2.Sprint(s)
	case "q3":
		return colorQ3.Sprint(s)
	case "q4":
		return colorQ4.Sprint(s)
	}
	return s
}

// formatExternal formats text for imported calendar events.
func formatExternal(s string) string {
	return colorExternal.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
