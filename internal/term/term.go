// Package term implements the immutable term representation shared by the
// parsers, the printer and the RKNL machine: variables, abstractions and
// applications, under the two name regimes (de Bruijn indices and
// Barendregt/unique names) used at the system's boundary and inside the
// machine respectively.
//
// A Term only ever holds Var, Abs or App nodes. The machine's internal
// Closure/Cache/Box representation lives in package machine and can never
// be constructed here, which is what keeps invariant 1 of the term model
// (external terms contain only Var/Abs/App) true by construction rather
// than by convention.
package term

// Kind discriminates the three term variants.
type Kind int

const (
	Var Kind = iota
	Abs
	App
)

func (k Kind) String() string {
	switch k {
	case Var:
		return "Var"
	case Abs:
		return "Abs"
	case App:
		return "App"
	default:
		return "Kind(?)"
	}
}

// Regime tags how a Var's Name field is to be interpreted. Abs.Name is
// meaningful only under Unique; it is always zero under Index.
type Regime int

const (
	// Index terms carry de Bruijn indices: Var.Name is the binder depth.
	Index Regime = iota
	// Unique terms carry Barendregt-style globally unique binder names.
	Unique
)

func (r Regime) String() string {
	if r == Unique {
		return "Unique"
	}
	return "Index"
}

// Term is an immutable node of the external (Var/Abs/App) term algebra.
// Values are never mutated after construction; term operations that
// "change" a term return a new one.
type Term struct {
	Kind Kind

	// Var: index or unique name, tagged by Regime.
	Name   int
	Regime Regime

	// Abs: binder name (Unique regime only, else 0) and body.
	Body *Term

	// App: operands.
	Lhs *Term
	Rhs *Term
}

// NewVar builds a variable term under the given regime.
func NewVar(name int, regime Regime) *Term {
	return &Term{Kind: Var, Name: name, Regime: regime}
}

// NewAbs builds an abstraction. name is the Unique-regime binder name, or 0
// for an Index-regime term.
func NewAbs(name int, body *Term) *Term {
	return &Term{Kind: Abs, Name: name, Body: body}
}

// NewApp builds an application.
func NewApp(lhs, rhs *Term) *Term {
	return &Term{Kind: App, Lhs: lhs, Rhs: rhs}
}

// Namer is a monotonic source of globally unique binder names, shared by
// term conversion and the machine so that names it hands out never collide
// with ones already present in a term under conversion. The zero value is
// not ready for use; construct with NewNamer.
type Namer struct {
	next int
}

// NewNamer returns a Namer that starts handing out names at seed. Seed
// should be non-zero: name 0 is reserved by invariant 3 to mark "no name"
// on Index-regime Abs nodes.
func NewNamer(seed int) *Namer {
	if seed == 0 {
		seed = 1
	}
	return &Namer{next: seed}
}

// Next returns a fresh unique name.
func (n *Namer) Next() int {
	v := n.next
	n.next++
	return v
}
