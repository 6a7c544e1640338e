// Package debruijn implements the textual de Bruijn notation parser: one
// of the two input forms the evaluator accepts, alongside package blc.
// `[body]` is an abstraction, `(lhs rhs)` an application, and a single
// digit `'0'..'9'` a variable of that index. The parser is intentionally
// tolerant: any other byte is skipped rather than rejected, mirroring how
// the BLC reader treats non-'0'/'1' bytes as whitespace/comment filler.
package debruijn

import (
	"github.com/pkg/errors"

	"github.com/blclang/rknl/internal/term"
)

// ErrUnexpectedEOF is wrapped and returned when the input ends mid-term.
var ErrUnexpectedEOF = errors.New("debruijn: unexpected end of input")

// Parse reads a single term in textual de Bruijn notation from s. The
// returned term is in Index regime.
func Parse(s string) (*term.Term, error) {
	p := &parser{input: s}
	t, err := p.term()
	if err != nil {
		return nil, errors.Wrap(err, "debruijn: parse failed")
	}
	return t, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) peek() (byte, bool) {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '[' || c == ']' || c == '(' || c == ')' || (c >= '0' && c <= '9') {
			return c, true
		}
		p.pos++
	}
	return 0, false
}

func (p *parser) next() (byte, bool) {
	c, ok := p.peek()
	if ok {
		p.pos++
	}
	return c, ok
}

func (p *parser) term() (*term.Term, error) {
	c, ok := p.next()
	if !ok {
		return nil, ErrUnexpectedEOF
	}
	switch {
	case c == '[':
		body, err := p.term()
		if err != nil {
			return nil, err
		}
		p.skipOne(']')
		return term.NewAbs(0, body), nil
	case c == '(':
		lhs, err := p.term()
		if err != nil {
			return nil, err
		}
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		p.skipOne(')')
		return term.NewApp(lhs, rhs), nil
	case c >= '0' && c <= '9':
		return term.NewVar(int(c-'0'), term.Index), nil
	default:
		return nil, errors.Errorf("debruijn: unexpected character %q", c)
	}
}

// skipOne consumes up to and including the next occurrence of closer,
// skipping anything unrecognized in between. Malformed or missing closers
// are tolerated: the tree already parsed is returned regardless.
func (p *parser) skipOne(closer byte) {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		p.pos++
		if c == closer {
			return
		}
	}
}
