// Package machine implements the RKNL abstract machine: the two
// configuration shapes (E "closure" mode and C "computed" mode), the
// eleven transition rules, and the reduction loop that drives a term to
// its normal form.
//
// The machine's internal term representation (value) is a strict superset
// of the external term.Term algebra, adding the Closure and Cache variants
// that must never leak past this package's boundary. toValue and
// materialize are the only two functions that cross that boundary.
package machine

import "github.com/blclang/rknl/internal/store"

type valueKind int

const (
	vVar valueKind = iota
	vAbs
	vApp
	vClosure
	vCache
)

func (k valueKind) String() string {
	switch k {
	case vVar:
		return "Var"
	case vAbs:
		return "Abs"
	case vApp:
		return "App"
	case vClosure:
		return "Closure"
	case vCache:
		return "Cache"
	default:
		return "valueKind(?)"
	}
}

// value is the machine's internal term representation: Var/Abs/App mirror
// term.Term under the Unique regime; Closure and Cache exist only here.
type value struct {
	kind valueKind

	// vVar: unique name. vAbs: binder's unique name.
	name int

	// vAbs, vClosure: body.
	body *value

	// vApp: operands.
	lhs *value
	rhs *value

	// vClosure: captured environment.
	env *store.Map[*box]

	// vCache: the memoization cell and the closure it memoizes. Per the
	// frame-variant redesign, a Cache's payload is always a plain Closure
	// value here - never a Var(0) hole, which only ever appears as a
	// stack frame (see frame.go).
	slot    *box
	closure *value
}

func newVar(name int) *value {
	return &value{kind: vVar, name: name}
}

func newAbs(name int, body *value) *value {
	return &value{kind: vAbs, name: name, body: body}
}

func newApp(lhs, rhs *value) *value {
	return &value{kind: vApp, lhs: lhs, rhs: rhs}
}

func newClosure(body *value, env *store.Map[*box]) *value {
	return &value{kind: vClosure, body: body, env: env}
}

func newCache(slot *box, closure *value) *value {
	return &value{kind: vCache, slot: slot, closure: closure}
}

type boxState int

const (
	boxTodo boxState = iota
	boxDone
)

// box is the one-shot memoization cell shared between an environment entry
// and the Cache that originated it. It transitions Todo -> Done exactly
// once, by rule 5; every other rule only ever reads it.
type box struct {
	state boxState
	// Todo: nil, or an unevaluated Closure (rule 6's argument binding).
	// Done: the final term the box remembers.
	term *value
}
