package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palisadeengineering/timeaudit/internal/grid"
)

// DebugLogger logs TUI state, keystrokes, and gesture events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "timeaudit-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": DebugLogPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogMouse logs a raw mouse event.
func LogMouse(msg tea.MouseMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("MOUSE", map[string]any{
		"x":      msg.X,
		"y":      msg.Y,
		"action": int(msg.Action),
		"button": int(msg.Button),
	})
}

// LogGesture logs a finalized gesture and its proposal.
func LogGesture(kind string, res grid.Result) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	data := map[string]any{"kind": kind}
	switch {
	case res.Create != nil:
		data["date"] = res.Create.Date.Format("2006-01-02")
		data["start"] = res.Create.Start
		data["end"] = res.Create.End
	case res.Move != nil:
		data["block_id"] = res.Move.BlockID
		data["date"] = res.Move.Date.Format("2006-01-02")
		data["start"] = res.Move.Start
		data["end"] = res.Move.End
	case res.Resize != nil:
		data["block_id"] = res.Resize.BlockID
		data["new_end"] = res.Resize.NewEnd
	}
	debugLog.log("GESTURE", data)
}

// LogError logs an error.
func LogError(err error) {
	if debugLog == nil || !debugLog.enabled || err == nil {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"error": err.Error(),
	})
}
