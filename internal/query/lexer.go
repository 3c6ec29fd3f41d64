package query

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokString
	tokColon
	tokNeq
	tokLParen
	tokRParen
	tokAnd
	tokOr
	tokNot
	tokBad
)

type token struct {
	kind tokenKind
	text string
}

// lexer tokenizes a filter expression. Words may contain letters, digits,
// and the path/value punctuation '_', '-', '.', '/'.
type lexer struct {
	src string
	pos int
}

func (l *lexer) next() token {
	for l.pos < len(l.src) && unicode.IsSpace(rune(l.src[l.pos])) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF}
	}

	switch c := l.src[l.pos]; c {
	case ':':
		l.pos++
		return token{kind: tokColon, text: ":"}
	case '(':
		l.pos++
		return token{kind: tokLParen, text: "("}
	case ')':
		l.pos++
		return token{kind: tokRParen, text: ")"}
	case '!':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '=' {
			l.pos += 2
			return token{kind: tokNeq, text: "!="}
		}
		l.pos++
		return token{kind: tokBad, text: "!"}
	case '"':
		return l.quoted()
	}

	if isWordByte(l.src[l.pos]) {
		return l.word()
	}
	bad := l.src[l.pos : l.pos+1]
	l.pos++
	return token{kind: tokBad, text: bad}
}

func (l *lexer) quoted() token {
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			return token{kind: tokString, text: b.String()}
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos++
			c = l.src[l.pos]
		}
		b.WriteByte(c)
		l.pos++
	}
	// Unterminated string; surface as a bad token so parsing fails loudly.
	return token{kind: tokBad, text: `"` + b.String()}
}

func (l *lexer) word() token {
	start := l.pos
	for l.pos < len(l.src) && isWordByte(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	switch strings.ToUpper(text) {
	case "AND":
		return token{kind: tokAnd, text: text}
	case "OR":
		return token{kind: tokOr, text: text}
	case "NOT":
		return token{kind: tokNot, text: text}
	}
	return token{kind: tokWord, text: text}
}

func isWordByte(c byte) bool {
	r := rune(c)
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		c == '_' || c == '-' || c == '.' || c == '/'
}
