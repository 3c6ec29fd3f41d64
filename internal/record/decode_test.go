package record

import (
	"strings"
	"testing"
	"time"
)

func TestDecode_StructuredLine(t *testing.T) {
	var d Decoder

	rec := d.Decode(0, 1, `{"time":1700000000000,"level":30,"msg":"started","pid":42,"ctx":{"region":"eu"}}`)

	if rec.Level != LevelInfo {
		t.Fatalf("Level = %v, want %v", rec.Level, LevelInfo)
	}
	if rec.Message != "started" {
		t.Fatalf("Message = %q, want %q", rec.Message, "started")
	}
	want := time.UnixMilli(1700000000000).UTC()
	if !rec.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", rec.Time, want)
	}
	if got, ok := rec.Field("pid"); !ok || got != "42" {
		t.Fatalf("Field(pid) = %q, %v; want %q, true", got, ok, "42")
	}
	if got, ok := rec.Field("ctx.region"); !ok || got != "eu" {
		t.Fatalf("Field(ctx.region) = %q, %v; want %q, true", got, ok, "eu")
	}
	if _, ok := rec.Field("ctx.zone"); ok {
		t.Fatalf("Field(ctx.zone) resolved, want miss")
	}
}

func TestDecode_LevelNames(t *testing.T) {
	var d Decoder

	cases := []struct {
		line string
		want Level
	}{
		{`{"level":"warn","msg":"x"}`, LevelWarn},
		{`{"level":"ERROR","msg":"x"}`, LevelError},
		{`{"level":50,"msg":"x"}`, LevelError},
		{`{"msg":"x"}`, LevelInfo},
	}
	for _, tc := range cases {
		rec := d.Decode(0, 1, tc.line)
		if rec.Level != tc.want {
			t.Fatalf("Decode(%q).Level = %v, want %v", tc.line, rec.Level, tc.want)
		}
	}
}

func TestDecode_PlainTextFallback(t *testing.T) {
	var d Decoder

	rec := d.Decode(2, 7, "not-json")

	if rec.Level != LevelNone {
		t.Fatalf("Level = %v, want sentinel %v", rec.Level, LevelNone)
	}
	if rec.Message != "not-json" {
		t.Fatalf("Message = %q, want %q", rec.Message, "not-json")
	}
	if !rec.Time.IsZero() {
		t.Fatalf("Time = %v, want zero", rec.Time)
	}
	if rec.Fields != nil {
		t.Fatalf("Fields = %v, want nil", rec.Fields)
	}
	if rec.Source != 2 || rec.Line != 7 {
		t.Fatalf("Source/Line = %d/%d, want 2/7", rec.Source, rec.Line)
	}
}

func TestDecode_MalformedJSONFallsBack(t *testing.T) {
	var d Decoder

	for _, line := range []string{`{"level":`, `{broken}`, `[1,2,3]`, `"quoted"`, ""} {
		rec := d.Decode(0, 1, line)
		if rec.Level != LevelNone {
			t.Fatalf("Decode(%q).Level = %v, want %v", line, rec.Level, LevelNone)
		}
		if rec.Message != line {
			t.Fatalf("Decode(%q).Message = %q, want original line", line, rec.Message)
		}
	}
}

func TestDecode_StringTimestamp(t *testing.T) {
	var d Decoder

	rec := d.Decode(0, 1, `{"time":"2024-03-01T10:00:00Z","level":30,"msg":"x"}`)
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !rec.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", rec.Time, want)
	}

	rec = d.Decode(0, 2, `{"time":"yesterday-ish","level":30,"msg":"x"}`)
	if !rec.Time.IsZero() {
		t.Fatalf("Time = %v, want zero for unparseable timestamp", rec.Time)
	}
}

func TestDecode_ProjectionContainsFields(t *testing.T) {
	var d Decoder

	rec := d.Decode(0, 1, `{"level":30,"msg":"hello","user":{"name":"ada"}}`)
	text := rec.Text()
	for _, frag := range []string{"info", "hello", "user.name=ada"} {
		if !strings.Contains(text, frag) {
			t.Fatalf("Text() = %q, want it to contain %q", text, frag)
		}
	}
}

func TestBefore_TotalOrder(t *testing.T) {
	t1 := time.UnixMilli(1000)
	t2 := time.UnixMilli(2000)

	a := &Record{Source: 1, Line: 5, Time: t2}
	b := &Record{Source: 0, Line: 9, Time: t1}
	if !b.Before(a) || a.Before(b) {
		t.Fatalf("earlier timestamp must order first regardless of source")
	}

	// Timestamp tie: source index breaks it.
	c := &Record{Source: 0, Line: 1, Time: t1}
	d := &Record{Source: 1, Line: 1, Time: t1}
	if !c.Before(d) || d.Before(c) {
		t.Fatalf("source index must break timestamp ties")
	}

	// Timeless records sort before timestamped ones.
	e := &Record{Source: 2, Line: 3}
	if !e.Before(b) {
		t.Fatalf("timeless record must sort before timestamped record")
	}
}
