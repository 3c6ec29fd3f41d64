package query

import (
	"testing"

	"github.com/loupedev/loupe/internal/record"
)

func decode(t *testing.T, line string) *record.Record {
	t.Helper()
	var d record.Decoder
	return d.Decode(0, 1, line)
}

func TestCompile_FieldEquality(t *testing.T) {
	rec := decode(t, `{"level":30,"msg":"connected","region":"eu-west"}`)

	cases := []struct {
		expr string
		want bool
	}{
		{`region:eu-west`, true},
		{`region:EU-WEST`, true}, // comparisons are case-insensitive
		{`region:us-east`, false},
		{`region != us-east`, true},
		{`region != eu-west`, false},
		{`level:info`, true},
		{`missing.path:x`, false},
		{`missing.path != x`, true},
	}
	for _, tc := range cases {
		expr, err := Compile(tc.expr)
		if err != nil {
			t.Fatalf("Compile(%q) returned error: %v", tc.expr, err)
		}
		if got := expr.Eval(rec); got != tc.want {
			t.Fatalf("Eval(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestCompile_BooleanOperators(t *testing.T) {
	rec := decode(t, `{"level":40,"msg":"slow query","db":"orders"}`)

	cases := []struct {
		expr string
		want bool
	}{
		{`db:orders AND level:warn`, true},
		{`db:orders AND level:error`, false},
		{`db:users OR db:orders`, true},
		{`NOT db:users`, true},
		{`NOT (db:orders OR db:users)`, false},
		{`slow AND NOT level:error`, true},
		{`"slow query"`, true},
		{`"fast query"`, false},
	}
	for _, tc := range cases {
		expr, err := Compile(tc.expr)
		if err != nil {
			t.Fatalf("Compile(%q) returned error: %v", tc.expr, err)
		}
		if got := expr.Eval(rec); got != tc.want {
			t.Fatalf("Eval(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestCompile_BareTermMatchesPlainText(t *testing.T) {
	rec := decode(t, "GET /healthz 200")

	expr, err := Compile("healthz")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if !expr.Eval(rec) {
		t.Fatalf("bare term should match the record's text projection")
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"(a OR b",
		"path:",
		"AND x",
		`"unterminated`,
		"a ~ b",
	} {
		if _, err := Compile(input); err == nil {
			t.Fatalf("Compile(%q) succeeded, want error", input)
		}
	}
}
