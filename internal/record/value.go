package record

import (
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
)

// Kind enumerates the shapes a Value can take.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// Value is an owned tree of structured log data. Unlike a *fastjson.Value it
// shares no memory with the parser that produced it, so a Record can hold it
// for the life of the process.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  []Member // object members in source order
	arr  []*Value
}

// Member is one key/value pair of an object Value.
type Member struct {
	Key string
	Val *Value
}

// Kind returns the value's shape.
func (v *Value) Kind() Kind { return v.kind }

// Members returns the object members in source order, or nil for non-objects.
func (v *Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Items returns the array elements, or nil for non-arrays.
func (v *Value) Items() []*Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Lookup resolves a dotted path ("a.b.c") by walking nested objects.
// It returns nil when any segment is missing or a non-object is traversed.
func (v *Value) Lookup(path string) *Value {
	cur := v
	for path != "" {
		var seg string
		if i := strings.IndexByte(path, '.'); i >= 0 {
			seg, path = path[:i], path[i+1:]
		} else {
			seg, path = path, ""
		}
		if cur == nil || cur.kind != KindObject {
			return nil
		}
		var next *Value
		for _, m := range cur.obj {
			if m.Key == seg {
				next = m.Val
				break
			}
		}
		cur = next
	}
	return cur
}

// Scalar returns a string form of the value for comparisons. Objects and
// arrays project to their flattened text; numbers drop a trailing ".0".
func (v *Value) Scalar() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.num)
	case KindString:
		return v.str
	}
	var b strings.Builder
	v.appendText(&b, "")
	return b.String()
}

// appendText writes the value's flattened "key=value" projection, prefixing
// nested keys with the dotted path so far.
func (v *Value) appendText(b *strings.Builder, prefix string) {
	switch v.kind {
	case KindObject:
		for _, m := range v.obj {
			key := m.Key
			if prefix != "" {
				key = prefix + "." + m.Key
			}
			m.Val.appendText(b, key)
		}
	case KindArray:
		for i, item := range v.arr {
			key := strconv.Itoa(i)
			if prefix != "" {
				key = prefix + "." + key
			}
			item.appendText(b, key)
		}
	default:
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if prefix != "" {
			b.WriteString(prefix)
			b.WriteByte('=')
		}
		b.WriteString(v.Scalar())
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// fromFastjson deep-copies a parsed value into an owned tree.
func fromFastjson(v *fastjson.Value) *Value {
	switch v.Type() {
	case fastjson.TypeObject:
		out := &Value{kind: KindObject}
		o, _ := v.Object()
		o.Visit(func(key []byte, val *fastjson.Value) {
			out.obj = append(out.obj, Member{Key: string(key), Val: fromFastjson(val)})
		})
		return out
	case fastjson.TypeArray:
		out := &Value{kind: KindArray}
		a, _ := v.Array()
		for _, item := range a {
			out.arr = append(out.arr, fromFastjson(item))
		}
		return out
	case fastjson.TypeString:
		sb, _ := v.StringBytes()
		return &Value{kind: KindString, str: string(sb)}
	case fastjson.TypeNumber:
		f, _ := v.Float64()
		return &Value{kind: KindNumber, num: f}
	case fastjson.TypeTrue:
		return &Value{kind: KindBool, b: true}
	case fastjson.TypeFalse:
		return &Value{kind: KindBool, b: false}
	}
	return &Value{kind: KindNull}
}
