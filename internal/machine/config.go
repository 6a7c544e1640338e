package machine

import (
	"github.com/blclang/rknl/internal/diag"
	"github.com/blclang/rknl/internal/store"
)

type mode int

const (
	modeE mode = iota
	modeC
)

// config is a Configuration: E{term, env, stack} or C{stack, term}
// depending on mode. Both shapes share the same three fields since the
// distinction is purely how term is to be treated, not what's stored.
type config struct {
	mode  mode
	term  *value
	env   *store.Map[*box]
	stack *frame
}

// Trace is invoked exactly once per successful transition. label is one of
// '1'..'9','A','B'. The callback must not mutate machine state; the machine
// does not defend against a callback that tries to.
type Trace func(step int, label byte, cookie any)

type options struct {
	trace      Trace
	cookie     any
	stepBudget int
	sink       diag.Sink
}

// Option configures a Reduce call, in the functional-options shape.
type Option func(*options)

// WithTrace installs a per-transition callback and the opaque cookie
// passed through to it unchanged.
func WithTrace(trace Trace, cookie any) Option {
	return func(o *options) {
		o.trace = trace
		o.cookie = cookie
	}
}

// WithStepBudget bounds the number of transitions Reduce will take before
// giving up with OutcomeBudgetExceeded. A budget of 0 (the default) means
// unbounded - the caller accepts the risk of non-termination.
func WithStepBudget(n int) Option {
	return func(o *options) { o.stepBudget = n }
}

// WithDiagnostics routes malformed-input and internal-bug diagnostics to
// sink instead of discarding them.
func WithDiagnostics(sink diag.Sink) Option {
	return func(o *options) { o.sink = sink }
}
