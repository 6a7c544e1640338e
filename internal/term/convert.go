package term

import "github.com/blclang/rknl/internal/diag"

// work items drive the iterative traversals below. In the three traversals
// that build a term, each node is visited twice: once to schedule its
// children (enter) and once to assemble the result from the
// (already-produced) children (leave); AlphaEquivalent walks a stack of
// node pairs, visiting each pair once. This keeps
// ToUnique, ToIndex, Duplicate and AlphaEquivalent off the Go call stack,
// per the "explicit work queues" design note - a large term no longer risks
// blowing the goroutine stack the way the source's naive recursion could.
type direction int

const (
	enter direction = iota
	leave
)

// ToUnique converts t from Index regime to Unique regime, allocating a
// fresh unique name per binder via namer. Unbound indices are reported to
// diag and replaced with a fresh name so reduction can still proceed
// deterministically (see invariant 3 and the error-handling policy).
func ToUnique(t *Term, namer *Namer, sink diag.Sink) *Term {
	type frame struct {
		dir   direction
		node  *Term
		names []int
		// for Abs leave: the fresh name allocated on enter
		freshName int
	}

	stack := []frame{{dir: enter, node: t}}
	var results []*Term

	pop := func() *Term {
		v := results[len(results)-1]
		results = results[:len(results)-1]
		return v
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.dir == leave {
			switch f.node.Kind {
			case App:
				rhs := pop()
				lhs := pop()
				results = append(results, NewApp(lhs, rhs))
			case Abs:
				body := pop()
				results = append(results, NewAbs(f.freshName, body))
			}
			continue
		}

		switch f.node.Kind {
		case Var:
			size := len(f.names)
			idx := f.node.Name
			var name int
			if idx >= 0 && idx < size {
				name = f.names[size-idx-1]
			} else {
				sink.Diagnosef("term: unbound index %d at depth %d", idx, size)
				name = namer.Next()
			}
			results = append(results, NewVar(name, Unique))
		case Abs:
			fresh := namer.Next()
			names := make([]int, len(f.names)+1)
			copy(names, f.names)
			names[len(f.names)] = fresh
			stack = append(stack, frame{dir: leave, node: f.node, names: f.names, freshName: fresh})
			stack = append(stack, frame{dir: enter, node: f.node.Body, names: names})
		case App:
			stack = append(stack, frame{dir: leave, node: f.node, names: f.names})
			stack = append(stack, frame{dir: enter, node: f.node.Rhs, names: f.names})
			stack = append(stack, frame{dir: enter, node: f.node.Lhs, names: f.names})
		default:
			sink.Diagnosef("term: invalid kind %v in ToUnique", f.node.Kind)
			results = append(results, f.node)
		}
	}
	return results[0]
}

// ToIndex is the inverse of ToUnique: it converts a Unique-regime term back
// to Index regime, scanning the bound-name stack from the top for a
// matching binder. Unbound names are reported; the resulting index is the
// number of enclosing binders, and conversion does not abort.
func ToIndex(t *Term, sink diag.Sink) *Term {
	type frame struct {
		dir   direction
		node  *Term
		names []int
	}

	stack := []frame{{dir: enter, node: t}}
	var results []*Term

	pop := func() *Term {
		v := results[len(results)-1]
		results = results[:len(results)-1]
		return v
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.dir == leave {
			switch f.node.Kind {
			case App:
				rhs := pop()
				lhs := pop()
				results = append(results, NewApp(lhs, rhs))
			case Abs:
				body := pop()
				results = append(results, NewAbs(0, body))
			}
			continue
		}

		switch f.node.Kind {
		case Var:
			size := len(f.names)
			pos := -1
			for i := size - 1; i >= 0; i-- {
				if f.names[i] == f.node.Name {
					pos = i
					break
				}
			}
			if pos < 0 {
				sink.Diagnosef("term: unbound name %d in ToIndex", f.node.Name)
			}
			// size - pos - 1 with the "not found" sentinel pos = -1 yields
			// size, the conventional de Bruijn index for a variable free in
			// a context of size enclosing binders.
			results = append(results, NewVar(size-pos-1, Index))
		case Abs:
			names := make([]int, len(f.names)+1)
			copy(names, f.names)
			names[len(f.names)] = f.node.Name
			stack = append(stack, frame{dir: leave, node: f.node, names: f.names})
			stack = append(stack, frame{dir: enter, node: f.node.Body, names: names})
		case App:
			stack = append(stack, frame{dir: leave, node: f.node, names: f.names})
			stack = append(stack, frame{dir: enter, node: f.node.Rhs, names: f.names})
			stack = append(stack, frame{dir: enter, node: f.node.Lhs, names: f.names})
		default:
			sink.Diagnosef("term: invalid kind %v in ToIndex", f.node.Kind)
			results = append(results, f.node)
		}
	}
	return results[0]
}

// Duplicate returns a deep copy of t sharing no node with t.
func Duplicate(t *Term, sink diag.Sink) *Term {
	type frame struct {
		dir  direction
		node *Term
	}

	stack := []frame{{dir: enter, node: t}}
	var results []*Term

	pop := func() *Term {
		v := results[len(results)-1]
		results = results[:len(results)-1]
		return v
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.dir == leave {
			switch f.node.Kind {
			case App:
				rhs := pop()
				lhs := pop()
				results = append(results, NewApp(lhs, rhs))
			case Abs:
				body := pop()
				results = append(results, NewAbs(f.node.Name, body))
			}
			continue
		}

		switch f.node.Kind {
		case Var:
			results = append(results, NewVar(f.node.Name, f.node.Regime))
		case Abs:
			stack = append(stack, frame{dir: leave, node: f.node})
			stack = append(stack, frame{dir: enter, node: f.node.Body})
		case App:
			stack = append(stack, frame{dir: leave, node: f.node})
			stack = append(stack, frame{dir: enter, node: f.node.Rhs})
			stack = append(stack, frame{dir: enter, node: f.node.Lhs})
		default:
			sink.Diagnosef("term: invalid kind %v in Duplicate", f.node.Kind)
			results = append(results, f.node)
		}
	}
	return results[0]
}

// AlphaEquivalent reports whether a and b are structurally equal under the
// Index regime. Both terms must already be in Index regime; this is the
// shape the machine compares terms in (post to_index), never Unique.
func AlphaEquivalent(a, b *Term) bool {
	if a.Regime == Unique || b.Regime == Unique {
		panic("term: AlphaEquivalent called on a Unique-regime term")
	}

	type pair struct{ a, b *Term }
	stack := []pair{{a, b}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.a == nil || p.b == nil {
			if p.a != p.b {
				return false
			}
			continue
		}
		if (p.a.Kind == Var && p.a.Regime == Unique) || (p.b.Kind == Var && p.b.Regime == Unique) {
			panic("term: AlphaEquivalent called on a Unique-regime term")
		}
		if p.a.Kind != p.b.Kind {
			return false
		}
		switch p.a.Kind {
		case Var:
			if p.a.Name != p.b.Name {
				return false
			}
		case Abs:
			stack = append(stack, pair{p.a.Body, p.b.Body})
		case App:
			stack = append(stack, pair{p.a.Lhs, p.b.Lhs})
			stack = append(stack, pair{p.a.Rhs, p.b.Rhs})
		}
	}
	return true
}
