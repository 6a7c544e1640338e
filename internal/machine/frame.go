package machine

import "github.com/blclang/rknl/internal/store"

// frame is one entry of the machine's control stack, an immutable cons
// list (nil = empty). Each variant is the Go-native replacement for one of
// the original design's Var(0)-hole sentinels: frameAppArg stands for
// App(Var(0), Closure cl), frameAppFn for App(lhs, Var(0)), frameAbs for
// Abs(k, Var(0)), frameCache for Cache(box, Var(0)). Tagging each frame
// with one of four explicit kinds instead of an overloaded zero-named
// variable removes any need to
// distinguish a "hole" Var from a genuine user variable.
type frame struct {
	kind frameKind
	next *frame

	// frameAppArg: the not-yet-forced argument, as a closure (body, env).
	argBody *value
	argEnv  *store.Map[*box]

	// frameAppFn: the already-computed left-hand side.
	lhsVal *value

	// frameAbs: the binder name whose body is being reduced.
	absName int

	// frameCache: the box this frame will mark Done once its payload
	// arrives in C-mode.
	box *box
}

type frameKind int

const (
	frameAppArg frameKind = iota
	frameAppFn
	frameAbs
	frameCache
)
