package record

import (
	"strings"
	"time"

	"github.com/valyala/fastjson"
)

// Decoder converts raw lines into Records. It is safe for concurrent use;
// each decode borrows a parser from an internal pool and releases it before
// returning, having copied everything the Record keeps.
type Decoder struct {
	pool fastjson.ParserPool
}

// timestamp formats accepted for string "time" values, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Decode turns one raw line into exactly one Record. It never fails: lines
// that are not JSON objects become plain-text Records carrying LevelNone.
func (d *Decoder) Decode(source int, line uint64, raw string) *Record {
	rec := d.decodeStructured(source, line, raw)
	if rec == nil {
		rec = &Record{
			Source:  source,
			Line:    line,
			Level:   LevelNone,
			Message: raw,
			text:    raw,
		}
	}
	return rec
}

func (d *Decoder) decodeStructured(source int, line uint64, raw string) *Record {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return nil
	}

	p := d.pool.Get()
	defer d.pool.Put(p)

	v, err := p.Parse(trimmed)
	if err != nil || v.Type() != fastjson.TypeObject {
		return nil
	}

	rec := &Record{
		Source: source,
		Line:   line,
		Level:  LevelInfo,
	}

	if tv := v.Get("time"); tv != nil {
		rec.Time = decodeTime(tv)
	}
	if lv := v.Get("level"); lv != nil {
		rec.Level = decodeLevel(lv)
	}
	if mb := v.GetStringBytes("msg"); mb != nil {
		rec.Message = string(mb)
	} else if mb := v.GetStringBytes("message"); mb != nil {
		rec.Message = string(mb)
	}

	rec.Fields = leftoverFields(v)
	rec.text = project(rec)
	return rec
}

// decodeTime accepts epoch milliseconds or a string timestamp. Unparseable
// values leave the record timeless.
func decodeTime(v *fastjson.Value) time.Time {
	switch v.Type() {
	case fastjson.TypeNumber:
		ms, err := v.Int64()
		if err != nil || ms <= 0 {
			return time.Time{}
		}
		return time.UnixMilli(ms).UTC()
	case fastjson.TypeString:
		sb, _ := v.StringBytes()
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, string(sb)); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func decodeLevel(v *fastjson.Value) Level {
	switch v.Type() {
	case fastjson.TypeNumber:
		if n, err := v.Int(); err == nil && n > 0 {
			return Level(n)
		}
	case fastjson.TypeString:
		sb, _ := v.StringBytes()
		if lvl, ok := ParseLevel(string(sb)); ok {
			return lvl
		}
	}
	return LevelInfo
}

// leftoverFields copies every key the normalized fields did not consume into
// an owned tree. Returns nil when nothing is left.
func leftoverFields(v *fastjson.Value) *Value {
	o, err := v.Object()
	if err != nil {
		return nil
	}
	out := &Value{kind: KindObject}
	o.Visit(func(key []byte, val *fastjson.Value) {
		switch string(key) {
		case "time", "level", "msg", "message":
			return
		}
		out.obj = append(out.obj, Member{Key: string(key), Val: fromFastjson(val)})
	})
	if len(out.obj) == 0 {
		return nil
	}
	return out
}

func project(rec *Record) string {
	var b strings.Builder
	if !rec.Time.IsZero() {
		b.WriteString(rec.Time.Format(time.RFC3339))
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(rec.Level.String())
	if rec.Message != "" {
		b.WriteByte(' ')
		b.WriteString(rec.Message)
	}
	if rec.Fields != nil {
		rec.Fields.appendText(&b, "")
	}
	return b.String()
}
