package satadapter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLitOfIsStableAndDistinct(t *testing.T) {
	a := New()
	x1 := a.LitOf("x")
	x2 := a.LitOf("x")
	y := a.LitOf("y")
	require.Equal(t, x1, x2)
	require.NotEqual(t, x1, y)
}

func TestSolveSatisfiableConjunction(t *testing.T) {
	a := New()
	x := a.LitOf("x")
	y := a.LitOf("y")
	and := a.And(x, y)
	a.Bind(and)
	require.True(t, a.Solve())
	require.True(t, a.Value(x))
	require.True(t, a.Value(y))
}

func TestBindContradictionIsUnsat(t *testing.T) {
	a := New()
	x := a.LitOf("x")
	a.Bind(x)
	a.Bind(a.Not(x))
	require.False(t, a.Solve())
}

func TestAssumePermanentSurvivesTransientProbe(t *testing.T) {
	a := New()
	x := a.LitOf("x")
	y := a.LitOf("y")

	require.NoError(t, a.AssumePermanent(x))

	// A transient probe that is itself unsatisfiable should not
	// affect whether x is still assumed afterward.
	a.Bind(a.Iff(y, a.Not(x)))
	require.False(t, a.TransientSolve(x.Not()))

	require.True(t, a.Solve())
	require.True(t, a.Value(x))
}
