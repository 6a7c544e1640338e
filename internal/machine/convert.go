package machine

import (
	"github.com/blclang/rknl/internal/diag"
	"github.com/blclang/rknl/internal/term"
)

type direction int

const (
	enter direction = iota
	leave
)

// toValue lifts a Unique-regime term.Term across the package boundary into
// the machine's internal value representation. Walked iteratively, in
// keeping with the rest of this module's avoidance of recursion over
// caller-supplied term shapes.
func toValue(t *term.Term, sink diag.Sink) *value {
	type frameT struct {
		dir  direction
		node *term.Term
	}

	stack := []frameT{{dir: enter, node: t}}
	var results []*value

	pop := func() *value {
		v := results[len(results)-1]
		results = results[:len(results)-1]
		return v
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.dir == leave {
			switch f.node.Kind {
			case term.App:
				rhs := pop()
				lhs := pop()
				results = append(results, newApp(lhs, rhs))
			case term.Abs:
				body := pop()
				results = append(results, newAbs(f.node.Name, body))
			}
			continue
		}

		switch f.node.Kind {
		case term.Var:
			results = append(results, newVar(f.node.Name))
		case term.Abs:
			stack = append(stack, frameT{dir: leave, node: f.node})
			stack = append(stack, frameT{dir: enter, node: f.node.Body})
		case term.App:
			stack = append(stack, frameT{dir: leave, node: f.node})
			stack = append(stack, frameT{dir: enter, node: f.node.Rhs})
			stack = append(stack, frameT{dir: enter, node: f.node.Lhs})
		default:
			sink.Diagnosef("machine: invalid term kind %v entering the machine", f.node.Kind)
			results = append(results, newVar(0))
		}
	}
	return results[0]
}

// materialize lowers a machine value back into a term.Term, dropping
// nothing: encountering a Closure or Cache here means one survived to the
// supposed normal form, which the error-handling policy treats as a bug -
// materialize reports it and returns nil rather than fabricate a result.
func materialize(v *value, sink diag.Sink) *term.Term {
	type frameV struct {
		dir  direction
		node *value
	}

	stack := []frameV{{dir: enter, node: v}}
	var results []*term.Term

	pop := func() *term.Term {
		r := results[len(results)-1]
		results = results[:len(results)-1]
		return r
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.dir == leave {
			switch f.node.kind {
			case vApp:
				rhs := pop()
				lhs := pop()
				results = append(results, term.NewApp(lhs, rhs))
			case vAbs:
				body := pop()
				results = append(results, term.NewAbs(f.node.name, body))
			}
			continue
		}

		switch f.node.kind {
		case vVar:
			results = append(results, term.NewVar(f.node.name, term.Unique))
		case vAbs:
			stack = append(stack, frameV{dir: leave, node: f.node})
			stack = append(stack, frameV{dir: enter, node: f.node.body})
		case vApp:
			stack = append(stack, frameV{dir: leave, node: f.node})
			stack = append(stack, frameV{dir: enter, node: f.node.rhs})
			stack = append(stack, frameV{dir: enter, node: f.node.lhs})
		default:
			sink.Diagnosef("machine: a %v node survived to the normal form (internal bug)", f.node.kind)
			return nil
		}
	}
	return results[0]
}
