package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blclang/rknl/internal/diag"
	"github.com/blclang/rknl/internal/term"
)

// k = \x.\y.x, in Index regime.
func kTerm() *term.Term {
	return term.NewAbs(0, term.NewAbs(0, term.NewVar(1, term.Index)))
}

func TestRoundTripToUniqueToIndex(t *testing.T) {
	cases := []*term.Term{
		term.NewVar(0, term.Index),
		kTerm(),
		term.NewApp(kTerm(), term.NewVar(0, term.Index)),
		term.NewAbs(0, term.NewApp(term.NewVar(0, term.Index), term.NewVar(0, term.Index))),
	}
	for _, in := range cases {
		namer := term.NewNamer(1)
		uniq := term.ToUnique(in, namer, diag.Discard)
		back := term.ToIndex(uniq, diag.Discard)
		assert.True(t, term.AlphaEquivalent(in, back), "round trip changed the term")
	}
}

func TestToUniqueAssignsDistinctNames(t *testing.T) {
	namer := term.NewNamer(100)
	uniq := term.ToUnique(kTerm(), namer, diag.Discard)
	require.Equal(t, term.Abs, uniq.Kind)
	outer := uniq.Name
	inner := uniq.Body
	require.Equal(t, term.Abs, inner.Kind)
	assert.NotEqual(t, outer, inner.Name)
	assert.Equal(t, outer, inner.Body.Name, "bound variable should carry the outer binder's unique name")
}

func TestToUniqueUnboundIndexReported(t *testing.T) {
	var messages []string
	sink := sinkFunc(func(format string, args ...any) {
		messages = append(messages, format)
	})
	namer := term.NewNamer(1)
	free := term.NewVar(3, term.Index) // unbound: no enclosing binder
	uniq := term.ToUnique(free, namer, sink)
	assert.Equal(t, term.Var, uniq.Kind)
	assert.NotEmpty(t, messages)
}

func TestDuplicateProducesNoAliasing(t *testing.T) {
	orig := term.NewApp(kTerm(), term.NewVar(0, term.Index))
	dup := term.Duplicate(orig, diag.Discard)
	assert.True(t, term.AlphaEquivalent(orig, dup))
	assert.NotSame(t, orig, dup)
	assert.NotSame(t, orig.Lhs, dup.Lhs)
}

func TestAlphaEquivalentDeterministic(t *testing.T) {
	tm := term.NewApp(kTerm(), term.NewVar(0, term.Index))
	assert.True(t, term.AlphaEquivalent(tm, tm))
	assert.True(t, term.AlphaEquivalent(tm, term.Duplicate(tm, diag.Discard)))
}

func TestAlphaEquivalentPanicsOnUniqueRegime(t *testing.T) {
	namer := term.NewNamer(1)
	uniq := term.ToUnique(kTerm(), namer, diag.Discard)
	assert.Panics(t, func() {
		term.AlphaEquivalent(uniq, uniq)
	})
}

type sinkFunc func(format string, args ...any)

func (f sinkFunc) Diagnosef(format string, args ...any) { f(format, args...) }
