package machine

import (
	"github.com/blclang/rknl/internal/diag"
	"github.com/blclang/rknl/internal/store"
	"github.com/blclang/rknl/internal/term"
)

// Outcome classifies how Reduce ended.
type Outcome int

const (
	// OutcomeNormalForm means the returned term is the genuine β-normal
	// form.
	OutcomeNormalForm Outcome = iota
	// OutcomeBudgetExceeded means WithStepBudget's limit was hit before a
	// fixpoint was reached; the returned term is nil.
	OutcomeBudgetExceeded
	// OutcomeAborted means an internal-bug diagnostic fired (an invalid
	// dispatch, or a Closure/Cache surviving to the normal form); the
	// returned term is nil.
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNormalForm:
		return "normal-form"
	case OutcomeBudgetExceeded:
		return "budget-exceeded"
	case OutcomeAborted:
		return "aborted"
	default:
		return "Outcome(?)"
	}
}

// Reduce drives t, a term in Unique regime, to its β-normal form using the
// RKNL machine. namer supplies fresh binder names for rule 7's
// under-binder reduction; callers that need reproducible step traces
// should give it a fresh, independently-seeded *term.Namer per call.
func Reduce(t *term.Term, namer *term.Namer, opts ...Option) (*term.Term, Outcome) {
	o := options{sink: diag.Discard}
	for _, apply := range opts {
		apply(&o)
	}

	cfg := config{
		mode: modeE,
		term: toValue(t, o.sink),
		env:  store.Empty[*box](),
	}

	steps := 0
	for {
		if o.stepBudget > 0 && steps >= o.stepBudget {
			return nil, OutcomeBudgetExceeded
		}

		var next config
		var label byte
		var ok bool

		switch cfg.mode {
		case modeE:
			next, label, ok = stepE(cfg, o.sink)
			if !ok {
				return nil, OutcomeAborted
			}
		case modeC:
			next, label, ok = stepC(cfg, namer)
			if !ok {
				if cfg.stack != nil {
					o.sink.Diagnosef("machine: no transition applies with a non-empty stack (internal bug)")
					return nil, OutcomeAborted
				}
				result := materialize(cfg.term, o.sink)
				if result == nil {
					return nil, OutcomeAborted
				}
				return result, OutcomeNormalForm
			}
		}

		if o.trace != nil {
			o.trace(steps, label, o.cookie)
		}
		cfg = next
		steps++
	}
}
