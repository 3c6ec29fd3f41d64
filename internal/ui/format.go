package ui

import (
	"fmt"
	"strings"

	"github.com/loupedev/loupe/internal/record"
)

// levelBadge returns the fixed-width severity column for a record row.
func levelBadge(lvl record.Level) string {
	if lvl >= record.LevelNone {
		return "     "
	}
	return fmt.Sprintf("%-5s", strings.ToUpper(lvl.String()))
}

// formatRow renders one record line: timestamp, severity, message, fields.
// The result is plain text clipped to width; styling happens in the caller
// so cursor highlighting can restyle the whole row.
func formatRow(rec *record.Record, timeFormat string, width int) string {
	var b strings.Builder

	if rec.Time.IsZero() {
		b.WriteString(strings.Repeat(" ", len(timeFormat)))
	} else {
		b.WriteString(rec.Time.Local().Format(timeFormat))
	}
	b.WriteByte(' ')
	b.WriteString(levelBadge(rec.Level))
	b.WriteByte(' ')
	b.WriteString(rec.Message)

	if rec.Fields != nil {
		for _, m := range rec.Fields.Members() {
			if m.Val.Kind() == record.KindObject || m.Val.Kind() == record.KindArray {
				continue // nested data stays in the detail pane
			}
			b.WriteByte(' ')
			b.WriteString(m.Key)
			b.WriteByte('=')
			b.WriteString(m.Val.Scalar())
		}
	}

	return clip(b.String(), width)
}

// clip truncates to width runes, marking the cut with an ellipsis.
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// formatDetail renders the focused record for the detail pane: header
// fields first, then the full field tree, one line per leaf.
func formatDetail(rec *record.Record, timeFormat string) []string {
	lines := []string{
		"level:   " + rec.Level.String(),
		"source:  " + fmt.Sprintf("#%d line %d", rec.Source, rec.Line),
	}
	if !rec.Time.IsZero() {
		lines = append(lines, "time:    "+rec.Time.Local().Format(timeFormat))
	}
	if rec.Message != "" {
		lines = append(lines, "msg:     "+rec.Message)
	}
	if rec.Fields != nil {
		lines = append(lines, "")
		lines = append(lines, formatTree(rec.Fields, "", "  ")...)
	}
	return lines
}

// formatTree walks a value tree depth-first, indenting nested structures.
func formatTree(v *record.Value, indent, step string) []string {
	var lines []string
	switch v.Kind() {
	case record.KindObject:
		for _, m := range v.Members() {
			switch m.Val.Kind() {
			case record.KindObject, record.KindArray:
				lines = append(lines, indent+m.Key+":")
				lines = append(lines, formatTree(m.Val, indent+step, step)...)
			default:
				lines = append(lines, indent+m.Key+": "+m.Val.Scalar())
			}
		}
	case record.KindArray:
		for i, item := range v.Items() {
			key := fmt.Sprintf("%s%d:", indent, i)
			switch item.Kind() {
			case record.KindObject, record.KindArray:
				lines = append(lines, key)
				lines = append(lines, formatTree(item, indent+step, step)...)
			default:
				lines = append(lines, key+" "+item.Scalar())
			}
		}
	default:
		lines = append(lines, indent+v.Scalar())
	}
	return lines
}
