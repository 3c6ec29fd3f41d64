package query

import (
	"fmt"
	"strings"
)

// Compile parses a filter expression. An empty or blank input is an error:
// there is nothing useful an always-true filter can do on the stack.
func Compile(input string) (Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("empty expression")
	}
	p := &parser{lex: &lexer{src: input}}
	p.advance()
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q", p.cur.text)
	}
	return expr, nil
}

type parser struct {
	lex *lexer
	cur token
}

func (p *parser) advance() {
	p.cur = p.lex.next()
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = andExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.cur.kind == tokNot {
		p.advance()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notExpr{inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.cur.kind {
	case tokLParen:
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("missing ')'")
		}
		p.advance()
		return inner, nil

	case tokString:
		term := strings.ToLower(p.cur.text)
		p.advance()
		return termExpr{term: term}, nil

	case tokWord:
		word := p.cur.text
		p.advance()
		switch p.cur.kind {
		case tokColon:
			p.advance()
			return p.parseComparison(word, false)
		case tokNeq:
			p.advance()
			return p.parseComparison(word, true)
		}
		return termExpr{term: strings.ToLower(word)}, nil

	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression")

	default:
		return nil, fmt.Errorf("unexpected %q", p.cur.text)
	}
}

func (p *parser) parseComparison(path string, negate bool) (Expr, error) {
	switch p.cur.kind {
	case tokWord, tokString:
		value := p.cur.text
		p.advance()
		return fieldExpr{path: path, value: value, negate: negate}, nil
	}
	return nil, fmt.Errorf("missing value for field %q", path)
}
