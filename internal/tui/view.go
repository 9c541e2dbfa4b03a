package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/dateutil"
	"github.com/palisadeengineering/timeaudit/internal/grid"
)

// View renders the weekly grid.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderDayHeaders())
	b.WriteString("\n")

	g := m.gridCfg.Granularity()
	for row := m.scrollOffset; row < m.scrollOffset+m.visibleRows(); row++ {
		minutes := m.gridCfg.WindowStart() + row*g
		b.WriteString(m.renderRow(minutes))
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.renderEditPrompt())
	} else {
		b.WriteString(m.renderStatus())
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderTitle() string {
	end := m.weekStart.AddDate(0, 0, 6)
	label := fmt.Sprintf("timeaudit  %s to %s",
		m.weekStart.Format("Jan 2"), end.Format("Jan 2, 2006"))
	if m.loading {
		label += "  (loading)"
	}
	return m.styles.TitleStyle.Render(label)
}

func (m Model) renderDayHeaders() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))

	today := dateutil.TruncateToDay(m.now())
	for day := 0; day < 7; day++ {
		date := m.gridCfg.DayIndexToDate(day)
		label := date.Format("Mon 02")
		style := m.styles.DayHeaderStyle
		if date.Equal(today) {
			style = m.styles.DayHeaderTodayStyle
		}
		b.WriteString(style.Width(m.colWidth).Render(label))
	}
	return b.String()
}

// renderRow renders one slot row: the time gutter followed by seven day
// cells.
func (m Model) renderRow(minutes int) string {
	var b strings.Builder

	label := ""
	if minutes%60 == 0 {
		label = m.formatGutterTime(minutes)
	}
	b.WriteString(m.styles.TimeGutterStyle.Render(label))

	for day := 0; day < 7; day++ {
		b.WriteString(m.renderDayCell(day, minutes))
	}
	return b.String()
}

// formatGutterTime formats an hour label for the time gutter, honoring the
// configured clock format.
func (m Model) formatGutterTime(minutes int) string {
	if m.config.Calendar.TimeFormat == "12h" {
		h := minutes / 60
		suffix := "am"
		if h >= 12 {
			suffix = "pm"
		}
		h12 := h % 12
		if h12 == 0 {
			h12 = 12
		}
		return fmt.Sprintf("%d%s", h12, suffix)
	}
	return block.MinutesToTime(minutes)
}

// cellSegment is a styled span within a day cell, in character columns.
type cellSegment struct {
	start int
	width int
	text  string
}

// renderDayCell renders the colWidth-wide cell for one day at one slot.
// A gesture preview overrides the committed blocks on its rows.
func (m Model) renderDayCell(day, minutes int) string {
	if s, ok := m.renderPreviewCell(day, minutes); ok {
		return s
	}

	g := m.gridCfg.Granularity()
	var segs []cellSegment
	styles := map[int]*block.TimeBlock{}

	for _, blk := range m.dayBlocks[day] {
		if minutes < blk.StartMinutes() || minutes >= blk.EndMinutes() {
			continue
		}
		l, ok := m.layouts[day][blk.ID]
		if !ok {
			l = grid.Layout{LeftPercent: 0, WidthPercent: 100}
		}
		start := int(l.LeftPercent / 100 * float64(m.colWidth))
		width := int(l.WidthPercent/100*float64(m.colWidth) + 0.5)
		if width < 1 {
			width = 1
		}
		if start+width > m.colWidth {
			width = m.colWidth - start
		}
		if width <= 0 {
			continue
		}

		text := ""
		if minutes < blk.StartMinutes()+g || minutes == m.gridCfg.WindowStart() {
			// First visible row carries the label.
			text = blk.ActivityName
		}
		segs = append(segs, cellSegment{start: start, width: width, text: text})
		styles[start] = blk
	}

	if len(segs) == 0 {
		return m.styles.EmptyCellStyle.Render(padTo("", m.colWidth))
	}

	sortSegments(segs)
	var b strings.Builder
	cursor := 0
	for _, seg := range segs {
		if seg.start < cursor {
			continue
		}
		if seg.start > cursor {
			b.WriteString(m.styles.EmptyCellStyle.Render(padTo("", seg.start-cursor)))
		}
		blk := styles[seg.start]
		style := m.styles.BlockStyle(blk, blk.ID == m.selectedID)
		b.WriteString(style.Render(padTo(seg.text, seg.width)))
		cursor = seg.start + seg.width
	}
	if cursor < m.colWidth {
		b.WriteString(m.styles.EmptyCellStyle.Render(padTo("", m.colWidth-cursor)))
	}
	return b.String()
}

// renderPreviewCell renders the live gesture preview when it covers the
// given slot. Selecting highlights the anchored range, dragging shows the
// block at its tentative drop slot, resizing extends the grabbed block.
func (m Model) renderPreviewCell(day, minutes int) (string, bool) {
	s := m.tracker.Session()
	if s == nil {
		return "", false
	}

	g := m.gridCfg.Granularity()
	var lo, hi int
	var label string

	switch m.tracker.State() {
	case grid.StateSelecting:
		if day != s.AnchorDay {
			return "", false
		}
		lo, hi = s.AnchorMinutes, s.CurMinutes
		if hi < lo {
			lo, hi = hi, lo
		}
		hi += g
		label = fmt.Sprintf("%s-%s", block.MinutesToTime(lo), block.MinutesToTime(hi))
	case grid.StateDragging:
		if !s.HasValidSlot || day != s.CurDay {
			return "", false
		}
		lo, hi = s.CurMinutes, s.CurMinutes+s.Duration
		label = s.Block.ActivityName
	case grid.StateResizing:
		if day != s.AnchorDay {
			return "", false
		}
		lo, hi = s.AnchorMinutes, s.PreviewEnd
		label = fmt.Sprintf("until %s", block.MinutesToTime(hi))
	default:
		return "", false
	}

	if minutes < lo || minutes >= hi {
		return "", false
	}

	text := ""
	if minutes < lo+g {
		text = label
	}
	style := m.styles.PreviewStyle
	if m.tracker.State() == grid.StateSelecting {
		style = m.styles.SelectionStyle
	}
	return style.Render(padTo(text, m.colWidth)), true
}

func (m Model) renderStatus() string {
	if m.statusMsg == "" {
		return ""
	}
	if strings.HasPrefix(m.statusMsg, "Error") {
		return m.styles.ErrorStyle.Render(m.statusMsg)
	}
	return m.styles.StatusStyle.Render(m.statusMsg)
}

func (m Model) renderHelp() string {
	parts := []string{"drag: create/move", "click: select"}
	for _, b := range keys.helpBindings() {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return m.styles.HelpStyle.Render(strings.Join(parts, " | "))
}

// padTo pads or truncates s to exactly n display columns.
func padTo(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		if n <= 1 {
			return string(r[:n])
		}
		return string(r[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-len(r))
}

func sortSegments(segs []cellSegment) {
	for i := 1; i < len(segs); i++ {
		for j := i; j > 0 && segs[j].start < segs[j-1].start; j-- {
			segs[j], segs[j-1] = segs[j-1], segs[j]
		}
	}
}

// buildDayAudit formats a plain-text audit of one day's blocks for the
// clipboard.
func buildDayAudit(date time.Time, blocks []*block.TimeBlock) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Time audit for %s\n\n", date.Format("Monday, Jan 2 2006"))

	if len(blocks) == 0 {
		b.WriteString("No blocks logged.\n")
		return b.String()
	}

	total := 0
	byQuadrant := map[block.Quadrant]int{}
	for _, blk := range blocks {
		tagsuffix := ""
		if blk.IsExternal() {
			tagsuffix = " (calendar)"
		} else {
			tagsuffix = fmt.Sprintf(" [%s, %s]", blk.Quadrant, blk.Energy)
		}
		fmt.Fprintf(&b, "%s-%s  %s%s\n", blk.Start, blk.End, blk.ActivityName, tagsuffix)
		total += blk.Duration()
		if !blk.IsExternal() {
			byQuadrant[blk.Quadrant] += blk.Duration()
		}
	}

	b.WriteString("\n")
	for _, q := range []block.Quadrant{block.QuadrantQ1, block.QuadrantQ2, block.QuadrantQ3, block.QuadrantQ4} {
		if mins := byQuadrant[q]; mins > 0 {
			fmt.Fprintf(&b, "%s: %s\n", q, formatMinutes(mins))
		}
	}
	fmt.Fprintf(&b, "Total: %s\n", formatMinutes(total))
	return b.String()
}

func formatMinutes(mins int) string {
	h, m := mins/60, mins%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
