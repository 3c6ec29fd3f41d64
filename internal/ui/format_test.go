package ui

import (
	"strings"
	"testing"

	"github.com/loupedev/loupe/internal/record"
)

const testTimeFormat = "15:04:05.000"

func decodeLine(t *testing.T, raw string) *record.Record {
	t.Helper()
	var dec record.Decoder
	return dec.Decode(0, 1, raw)
}

func TestLevelBadge(t *testing.T) {
	tests := []struct {
		lvl  record.Level
		want string
	}{
		{record.LevelInfo, "INFO "},
		{record.LevelError, "ERROR"},
		{record.LevelTrace, "TRACE"},
		{record.LevelNone, "     "},
	}
	for _, tt := range tests {
		if got := levelBadge(tt.lvl); got != tt.want {
			t.Fatalf("levelBadge(%v) = %q, want %q", tt.lvl, got, tt.want)
		}
	}
}

func TestFormatRowPlainText(t *testing.T) {
	rec := decodeLine(t, "not json at all")

	row := formatRow(rec, testTimeFormat, 0)
	if !strings.HasPrefix(row, strings.Repeat(" ", len(testTimeFormat))) {
		t.Fatalf("timeless row should pad the timestamp column: %q", row)
	}
	if !strings.Contains(row, "not json at all") {
		t.Fatalf("row %q missing raw text", row)
	}
}

func TestFormatRowScalarFields(t *testing.T) {
	rec := decodeLine(t, `{"level":30,"msg":"request done","region":"eu","status":200,"ctx":{"addr":"10.0.0.1"}}`)

	row := formatRow(rec, testTimeFormat, 0)
	if !strings.Contains(row, "INFO") {
		t.Fatalf("row %q missing severity badge", row)
	}
	if !strings.Contains(row, "request done") {
		t.Fatalf("row %q missing message", row)
	}
	if !strings.Contains(row, "region=eu") || !strings.Contains(row, "status=200") {
		t.Fatalf("row %q missing scalar fields", row)
	}
	if strings.Contains(row, "addr") {
		t.Fatalf("row %q should omit nested fields", row)
	}
}

func TestFormatRowClipped(t *testing.T) {
	rec := decodeLine(t, `{"level":30,"msg":"a very long message that will not fit"}`)

	row := formatRow(rec, testTimeFormat, 24)
	if got := len([]rune(row)); got != 24 {
		t.Fatalf("clipped row is %d runes, want 24", got)
	}
	if !strings.HasSuffix(row, "…") {
		t.Fatalf("clipped row %q should end with ellipsis", row)
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "…"},
		{"hello", 0, "hello"}, // zero width disables clipping
		{"héllo!", 4, "hél…"},
	}
	for _, tt := range tests {
		if got := clip(tt.in, tt.width); got != tt.want {
			t.Fatalf("clip(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestFormatDetail(t *testing.T) {
	rec := decodeLine(t, `{"level":40,"msg":"upstream slow","latency":1.5,"ctx":{"addr":"10.0.0.1","port":443}}`)

	lines := formatDetail(rec, testTimeFormat)
	joined := strings.Join(lines, "\n")

	if lines[0] != "level:   warn" {
		t.Fatalf("detail starts with %q, want level header", lines[0])
	}
	if !strings.Contains(joined, "msg:     upstream slow") {
		t.Fatalf("detail missing message:\n%s", joined)
	}
	if !strings.Contains(joined, "latency: 1.5") {
		t.Fatalf("detail missing scalar field:\n%s", joined)
	}
	if !strings.Contains(joined, "ctx:") || !strings.Contains(joined, "  addr: 10.0.0.1") {
		t.Fatalf("detail missing nested field tree:\n%s", joined)
	}
}

func TestFormatDetailArray(t *testing.T) {
	rec := decodeLine(t, `{"level":30,"msg":"batch","ids":[7,8]}`)

	joined := strings.Join(formatDetail(rec, testTimeFormat), "\n")
	if !strings.Contains(joined, "ids:") ||
		!strings.Contains(joined, "  0: 7") || !strings.Contains(joined, "  1: 8") {
		t.Fatalf("detail missing array items:\n%s", joined)
	}
}
