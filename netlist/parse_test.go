package netlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseModuleScalarGates(t *testing.T) {
	src := `
# a small combinational fragment
INPUT(a)
INPUT(b)
OUTPUT(y)
t1 = AND(a,b)
t2 = NOT(a)
y = OR(t1,t2)
`
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.Inputs, 2)
	require.Len(t, m.Outputs, 1)
	require.Len(t, m.SelectedCells(), 3)

	and := m.SelectedCells()[0]
	require.Equal(t, CellAnd, and.Kind)
	require.Equal(t, []SignalBit{{Wire: "a"}}, and.Port("A"))
	require.Equal(t, []SignalBit{{Wire: "b"}}, and.Port("B"))
}

func TestParseModuleBufRegistersAlias(t *testing.T) {
	src := "y = BUF(x)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.Aliases(), 1)
	require.Equal(t, Alias{A: SignalBit{Wire: "y"}, B: SignalBit{Wire: "x"}}, m.Aliases()[0])
}

func TestParseModuleMux(t *testing.T) {
	src := "y = MUX(s,a,b)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	c := m.SelectedCells()[0]
	require.Equal(t, CellMux, c.Kind)
	require.Equal(t, SignalBit{Wire: "s"}, c.Port("S")[0])
	require.Equal(t, SignalBit{Wire: "a"}, c.Port("A")[0])
	require.Equal(t, SignalBit{Wire: "b"}, c.Port("B")[0])
}

func TestParseModuleVectorCell(t *testing.T) {
	src := "s0 s1 s2 = ADD(a0 a1 a2 / b0 b1 b2)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	c := m.SelectedCells()[0]
	require.Equal(t, CellAdd, c.Kind)
	require.Len(t, c.Port("A"), 3)
	require.Len(t, c.Port("B"), 3)
	require.Len(t, c.Port("Y"), 3)
	require.Equal(t, "s0 s1 s2", FormatBits(c.Port("Y")))
}

func TestParseModuleEquivCell(t *testing.T) {
	src := "eq0 eq1 = EQUIV(a0 a1 / b0 b1)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.EquivCells(), 1)
	require.Equal(t, CellEquiv, m.EquivCells()[0].Kind)
}

func TestParseModuleReduceTakesAWideVector(t *testing.T) {
	src := "y = REDUCE_AND(a0,a1,a2,a3)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	c := m.SelectedCells()[0]
	require.Equal(t, CellReduceAnd, c.Kind)
	require.Len(t, c.Port("A"), 4)
	require.Len(t, c.Port("Y"), 1)
}

func TestParseModuleMismatchedVectorWidths(t *testing.T) {
	src := "s0 s1 = ADD(a0 a1 a2 / b0 b1)\n"
	_, err := ParseModule("frag", strings.NewReader(src))
	require.Error(t, err)
}

func TestParseModuleUnknownCellKindIsPreserved(t *testing.T) {
	src := "y = FANCYGATE(a,b)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, CellUnknown, m.SelectedCells()[0].Kind)
}

func TestParseModuleConstants(t *testing.T) {
	src := "y = AND(a,1)\n"
	m, err := ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	b := m.SelectedCells()[0].Port("B")[0]
	require.True(t, b.IsConst())
	require.Equal(t, Const1, b.Const)
}

func TestParseModuleRejectsMalformedLine(t *testing.T) {
	_, err := ParseModule("frag", strings.NewReader("this is not a statement\n"))
	require.Error(t, err)
}
