// Package query implements the small boolean expression grammar used by
// expression filters.
//
// The grammar deliberately stays declarative so it is safe to evaluate
// against untrusted log input:
//
//	expr    := or
//	or      := and ("OR" and)*
//	and     := not ("AND" not)*
//	not     := "NOT" not | primary
//	primary := "(" expr ")" | path ":" value | path "!=" value | term
//
// A path is a dotted field path into the record ("ctx.region", "level").
// A bare term or quoted string with no path matches when the record's
// canonical text contains it. Parsing can fail; evaluation is total, and a
// comparison against a missing field is simply a non-match.
package query

import (
	"strings"

	"github.com/loupedev/loupe/internal/record"
)

// Expr is a compiled filter expression node.
type Expr interface {
	// Eval reports whether the record satisfies the expression.
	Eval(rec *record.Record) bool
}

type andExpr struct{ left, right Expr }

func (e andExpr) Eval(rec *record.Record) bool {
	return e.left.Eval(rec) && e.right.Eval(rec)
}

type orExpr struct{ left, right Expr }

func (e orExpr) Eval(rec *record.Record) bool {
	return e.left.Eval(rec) || e.right.Eval(rec)
}

type notExpr struct{ inner Expr }

func (e notExpr) Eval(rec *record.Record) bool {
	return !e.inner.Eval(rec)
}

// fieldExpr compares a dotted-path field against a captured value.
type fieldExpr struct {
	path   string
	value  string
	negate bool
}

func (e fieldExpr) Eval(rec *record.Record) bool {
	got, ok := rec.Field(e.path)
	match := ok && strings.EqualFold(got, e.value)
	if e.negate {
		return !match
	}
	return match
}

// termExpr matches when the record's canonical text contains the term.
type termExpr struct {
	term string // stored lowercased
}

func (e termExpr) Eval(rec *record.Record) bool {
	return strings.Contains(strings.ToLower(rec.Text()), e.term)
}
