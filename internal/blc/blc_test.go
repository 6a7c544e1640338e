package blc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blclang/rknl/internal/blc"
	"github.com/blclang/rknl/internal/term"
)

func TestReadWriteRoundTrip(t *testing.T) {
	cases := []string{
		"10",         // Var(0)
		"0000011010", // \\.\\.(0 0)  (lambda lambda (0 0))
		"0110" + "10" + "10",
	}
	for _, in := range cases {
		parsed, err := blc.Read(strings.NewReader(in))
		require.NoError(t, err)

		var out strings.Builder
		require.NoError(t, blc.Write(&out, parsed))

		reparsed, err := blc.Read(strings.NewReader(out.String()))
		require.NoError(t, err)
		assert.True(t, term.AlphaEquivalent(parsed, reparsed))
	}
}

func TestReadSkipsNonBitBytes(t *testing.T) {
	parsed, err := blc.Read(strings.NewReader("  1\n0  "))
	require.NoError(t, err)
	require.Equal(t, term.Var, parsed.Kind)
	assert.Equal(t, 0, parsed.Name)
}

func TestWriteVarEncodesIndexInUnaryPrefix(t *testing.T) {
	var out strings.Builder
	require.NoError(t, blc.Write(&out, term.NewVar(2, term.Index)))
	assert.Equal(t, "1110", out.String())
}

func TestReadUnexpectedEOF(t *testing.T) {
	_, err := blc.Read(strings.NewReader("0"))
	assert.Error(t, err)
}
