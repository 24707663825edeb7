package reachability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/C-Elegans/yosys/netlist"
)

func mustParse(t *testing.T, src string) *netlist.Module {
	t.Helper()
	m, err := netlist.ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	return m
}

func TestRegistersCollectsDffAndLatch(t *testing.T) {
	m := mustParse(t, "INPUT(d)\nq1 = DFF(d)\nq2 = LATCH(d)\ny = AND(d,d)\n")
	require.Len(t, registers(m), 2)
}

func TestExploreDetectsViolationOnGenuineMismatch(t *testing.T) {
	m := mustParse(t, "INPUT(a)\nINPUT(b)\ny = EQUIV(a / b)\n")
	markers := m.EquivCells()
	require.Len(t, markers, 1)

	report := Explore(m, 1, 1, markers)
	require.NotEmpty(t, report.Violations, "a and b disagree on some input combination")
}

func TestExploreFindsNoViolationWhenMarkerTriviallyHolds(t *testing.T) {
	m := mustParse(t, "INPUT(a)\ny = EQUIV(a / a)\n")
	markers := m.EquivCells()
	require.Len(t, markers, 1)

	report := Explore(m, 1, 1, markers)
	require.Empty(t, report.Violations)
}

func TestExploreWalksSequentialStateSpace(t *testing.T) {
	m := mustParse(t, "INPUT(d)\nq = DFF(d)\n")
	report := Explore(m, 3, 2, nil)
	require.GreaterOrEqual(t, report.StatesExplored, 1)
	require.LessOrEqual(t, report.StatesExplored, 2)
}

func TestSettleIsIdempotentOnCombinationalNetlist(t *testing.T) {
	m := mustParse(t, "INPUT(a)\nINPUT(b)\ny = AND(a,b)\n")
	v := netlist.Valuation{m.Inputs[0]: true, m.Inputs[1]: true}
	settle(m, v)
	yCell := m.SelectedCells()[0]
	require.True(t, netlist.ValueOf(v, yCell.Port("Y")[0]))

	before := v[yCell.Port("Y")[0]]
	settle(m, v)
	require.Equal(t, before, v[yCell.Port("Y")[0]])
}
