package machine

import (
	"github.com/blclang/rknl/internal/diag"
	"github.com/blclang/rknl/internal/term"
)

// stepE applies the one E-mode rule that matches term.kind (rules 1-4, plus
// the free-variable self-evaluation case folded into rule 4). ok is false
// only when term.kind is outside Var/Abs/App, which toValue guarantees
// cannot happen for values this package itself produces, or when a Var is
// bound to a Todo box that does not hold a Closure (rule 3's precondition).
// Both checks exist because such a state is, per the error-handling policy,
// a bug to report and abort on rather than silently coerce.
func stepE(cfg config, sink diag.Sink) (config, byte, bool) {
	t := cfg.term
	switch t.kind {
	case vApp:
		f := &frame{kind: frameAppArg, argBody: t.rhs, argEnv: cfg.env, next: cfg.stack}
		return config{mode: modeE, term: t.lhs, env: cfg.env, stack: f}, '1', true

	case vAbs:
		b := &box{state: boxTodo}
		cl := newClosure(t, cfg.env)
		return config{mode: modeC, term: newCache(b, cl), stack: cfg.stack}, '2', true

	case vVar:
		b, found := cfg.env.Get(t.name)
		if !found {
			// Free variables evaluate to themselves (see the resolved open
			// question on free-variable handling).
			return config{mode: modeC, term: t, stack: cfg.stack}, '4', true
		}
		if b.state == boxDone {
			return config{mode: modeC, term: b.term, stack: cfg.stack}, '4', true
		}
		if b.term == nil || b.term.kind != vClosure {
			sink.Diagnosef("machine: rule 3 expects a Todo box holding a Closure for name %d", t.name)
			return config{}, 0, false
		}
		cl := b.term
		f := &frame{kind: frameCache, box: b, next: cfg.stack}
		return config{mode: modeE, term: cl.body, env: cl.env, stack: f}, '3', true

	default:
		sink.Diagnosef("machine: invalid term kind %v in E-mode", t.kind)
		return config{}, 0, false
	}
}

// stepC tries rules 5 through 11 in the exact priority order the design
// requires (rule 6 before rule 9, in particular). ok is false exactly when
// no rule matches; by construction of the four frame kinds and the
// Cache-always-wraps-an-Abs invariant, that only happens with an empty
// stack, which the caller treats as a legitimate fixpoint rather than a
// bug - see Reduce.
func stepC(cfg config, namer *term.Namer) (config, byte, bool) {
	f := cfg.stack
	t := cfg.term

	// Rule 5: a pending Cache frame always claims the incoming term first.
	if f != nil && f.kind == frameCache {
		f.box.state = boxDone
		f.box.term = t
		return config{mode: modeC, term: t, stack: f.next}, '5', true
	}

	if t.kind == vCache {
		cl := t.closure
		// By construction every Cache wraps a Closure over an Abs (only
		// rule 2 creates one), so this guard is defensive rather than a
		// real branch point.
		if cl != nil && cl.kind == vClosure && cl.body != nil && cl.body.kind == vAbs {
			// Rule 6: immediately beta-reduce if we're applying to an argument.
			if f != nil && f.kind == frameAppArg {
				argClosure := newClosure(f.argBody, f.argEnv)
				fresh := &box{state: boxTodo, term: argClosure}
				newEnv := cl.env.Set(cl.body.name, fresh)
				return config{mode: modeE, term: cl.body.body, env: newEnv, stack: f.next}, '6', true
			}
			// Rule 7: not being applied - force the body under the binder.
			if t.slot.state == boxTodo && t.slot.term == nil {
				x := namer.Next()
				done := &box{state: boxDone, term: newVar(x)}
				newEnv := cl.env.Set(cl.body.name, done)
				cacheFrame := &frame{kind: frameCache, box: t.slot, next: f}
				absFrame := &frame{kind: frameAbs, absName: x, next: cacheFrame}
				return config{mode: modeE, term: cl.body.body, env: newEnv, stack: absFrame}, '7', true
			}
			// Rule 8: already forced once - reuse the memoized result.
			if t.slot.state == boxDone {
				return config{mode: modeC, term: t.slot.term, stack: f}, '8', true
			}
		}
	}

	// Rule 9: term isn't (yet) a function; swap focus to the argument.
	if f != nil && f.kind == frameAppArg {
		argClosure := newClosure(f.argBody, f.argEnv)
		newFrame := &frame{kind: frameAppFn, lhsVal: t, next: f.next}
		return config{mode: modeE, term: argClosure.body, env: argClosure.env, stack: newFrame}, '9', true
	}

	// Rule 10 ('A'): collapse into an App.
	if f != nil && f.kind == frameAppFn {
		return config{mode: modeC, term: newApp(f.lhsVal, t), stack: f.next}, 'A', true
	}

	// Rule 11 ('B'): collapse into an Abs.
	if f != nil && f.kind == frameAbs {
		return config{mode: modeC, term: newAbs(f.absName, t), stack: f.next}, 'B', true
	}

	return config{}, 0, false
}
