package netlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalBitwiseAndArithmetic(t *testing.T) {
	src := `
INPUT(a)
INPUT(b)
OUTPUT(y)
y = AND(a,b)
`
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)

	v := Valuation{{Wire: "a"}: true, {Wire: "b"}: true}
	vals, ok := Eval(v, m.SelectedCells()[0])
	require.True(t, ok)
	require.Equal(t, []bool{true}, vals)
}

func TestEvalAddWraps(t *testing.T) {
	src := "s0 s1 = ADD(a0 a1 / b0 b1)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)

	v := Valuation{
		{Wire: "a0"}: true, {Wire: "a1"}: true,
		{Wire: "b0"}: true, {Wire: "b1"}: false,
	}
	vals, ok := Eval(v, m.SelectedCells()[0])
	require.True(t, ok)
	// a=11(3), b=01(1), sum=4 mod 4 = 0 -> 00
	require.Equal(t, []bool{false, false}, vals)
}

func TestEvalEquivYBuffersA(t *testing.T) {
	src := "eq0 eq1 = EQUIV(a0 a1 / b0 b1)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)

	v := Valuation{
		{Wire: "a0"}: true, {Wire: "a1"}: false,
		{Wire: "b0"}: true, {Wire: "b1"}: true,
	}
	vals, ok := Eval(v, m.SelectedCells()[0])
	require.True(t, ok)
	require.Equal(t, []bool{true, false}, vals)
}

func TestEquivHoldsComparesAAndBIndependentlyOfY(t *testing.T) {
	src := "eq0 eq1 = EQUIV(a0 a1 / b0 b1)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	c := m.SelectedCells()[0]

	agree := Valuation{
		{Wire: "a0"}: true, {Wire: "a1"}: false,
		{Wire: "b0"}: true, {Wire: "b1"}: false,
	}
	require.True(t, EquivHolds(agree, c))

	disagree := Valuation{
		{Wire: "a0"}: true, {Wire: "a1"}: false,
		{Wire: "b0"}: true, {Wire: "b1"}: true,
	}
	require.False(t, EquivHolds(disagree, c))
}

func TestEvalDffHasNoEvaluator(t *testing.T) {
	src := "q = DFF(d)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)

	_, ok := Eval(Valuation{}, m.SelectedCells()[0])
	require.False(t, ok)
}
