// Package blc implements the Binary Lambda Calculus bitstream reader and
// writer: the evaluator's primary wire format. An abstraction is "00"
// followed by its body; an application is "01" followed by the left then
// right operand; a variable of index n is n+1 copies of '1' followed by
// '0'. Bytes other than '0'/'1' are skipped on read, matching the textual
// de Bruijn parser's tolerance for filler.
package blc

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/blclang/rknl/internal/term"
)

// ErrUnexpectedEOF is wrapped and returned when the bitstream ends mid-term.
var ErrUnexpectedEOF = errors.New("blc: unexpected end of input")

// Read parses a single term from r. The returned term is in Index regime.
func Read(r io.Reader) (*term.Term, error) {
	br := bufio.NewReader(r)
	t, err := readTerm(br)
	if err != nil {
		return nil, errors.Wrap(err, "blc: read failed")
	}
	return t, nil
}

func nextBit(br *bufio.Reader) (byte, bool, error) {
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		if b == '0' || b == '1' {
			return b, true, nil
		}
	}
}

func readTerm(br *bufio.Reader) (*term.Term, error) {
	b, ok, err := nextBit(br)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnexpectedEOF
	}

	if b == '0' {
		b2, ok, err := nextBit(br)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnexpectedEOF
		}
		if b2 == '0' {
			body, err := readTerm(br)
			if err != nil {
				return nil, err
			}
			return term.NewAbs(0, body), nil
		}
		lhs, err := readTerm(br)
		if err != nil {
			return nil, err
		}
		rhs, err := readTerm(br)
		if err != nil {
			return nil, err
		}
		return term.NewApp(lhs, rhs), nil
	}

	// b == '1': count consecutive '1's, then require a terminating '0'.
	n := 1
	for {
		b2, ok, err := nextBit(br)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnexpectedEOF
		}
		if b2 == '0' {
			break
		}
		n++
	}
	return term.NewVar(n-1, term.Index), nil
}

// Write emits t (Index regime) to w in BLC form.
func Write(w io.Writer, t *term.Term) error {
	bw := bufio.NewWriter(w)
	if err := writeTerm(bw, t); err != nil {
		return errors.Wrap(err, "blc: write failed")
	}
	return bw.Flush()
}

func writeTerm(bw *bufio.Writer, t *term.Term) error {
	switch t.Kind {
	case term.Abs:
		if _, err := bw.WriteString("00"); err != nil {
			return err
		}
		return writeTerm(bw, t.Body)
	case term.App:
		if _, err := bw.WriteString("01"); err != nil {
			return err
		}
		if err := writeTerm(bw, t.Lhs); err != nil {
			return err
		}
		return writeTerm(bw, t.Rhs)
	case term.Var:
		for i := 0; i <= t.Name; i++ {
			if err := bw.WriteByte('1'); err != nil {
				return err
			}
		}
		return bw.WriteByte('0')
	default:
		return errors.Errorf("blc: invalid term kind %v", t.Kind)
	}
}
