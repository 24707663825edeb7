package driver

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/C-Elegans/yosys/netlist"
)

func TestParseMaxStepsDefaults(t *testing.T) {
	n, err := ParseMaxSteps("")
	require.NoError(t, err)
	require.Equal(t, DefaultMaxSteps, n)
}

func TestParseMaxStepsRejectsMalformed(t *testing.T) {
	_, err := ParseMaxSteps("four")
	require.Error(t, err)

	_, err = ParseMaxSteps("-3")
	require.Error(t, err)

	_, err = ParseMaxSteps("0")
	require.Error(t, err)
}

func TestParseMaxStepsParsesPositiveInt(t *testing.T) {
	n, err := ParseMaxSteps("12")
	require.NoError(t, err)
	require.Equal(t, 12, n)
}

func mustParse(t *testing.T, src string) *netlist.Module {
	t.Helper()
	m, err := netlist.ParseModule("frag", strings.NewReader(src))
	require.NoError(t, err)
	return m
}

func TestRunAggregatesAcrossModules(t *testing.T) {
	a := mustParse(t, "INPUT(d)\nqa = DFF(d)\nqb = DFF(d)\neq = EQUIV(qa / qb)\n")
	a.Name = "moduleA"
	b := mustParse(t, "INPUT(d)\nqa = DFF(d)\nqb = DFF(d)\neq = EQUIV(qa / qb)\n")
	b.Name = "moduleB"

	report := Run([]*netlist.Module{a, b}, Options{MaxSteps: 2, Workers: 2})
	require.Len(t, report.Modules, 2)
	require.Equal(t, 2, report.TotalProven())

	gotModules := make([]string, len(report.Modules))
	for i, m := range report.Modules {
		gotModules[i] = m.Module
	}
	sort.Strings(gotModules)
	wantModules := []string{"moduleA", "moduleB"}
	if diff := cmp.Diff(wantModules, gotModules); diff != "" {
		t.Errorf("modules driven (-want +got):\n%s", diff)
	}
}

func TestRunSkipsModulesWithNoMarkers(t *testing.T) {
	m := mustParse(t, "y = AND(a,b)\n")
	m.Name = "nomarkers"

	report := Run([]*netlist.Module{m}, Options{MaxSteps: 2})
	require.Equal(t, 0, report.TotalProven())
	require.Equal(t, 0, report.Modules[0].Workset)
}

func TestRunVerifyWeakFindsNoViolationForGenuineEquivalence(t *testing.T) {
	m := mustParse(t, "INPUT(d)\nqa = DFF(d)\nqb = DFF(d)\neq = EQUIV(qa / qb)\n")
	m.Name = "verified"

	report := Run([]*netlist.Module{m}, Options{MaxSteps: 2, VerifyWeak: true, VerifyWeakSteps: 2})
	require.Equal(t, 1, report.TotalProven())
	require.Empty(t, report.Modules[0].Violations)
}

func TestRunExcludesAlreadyAliasedMarkerFromWorkset(t *testing.T) {
	m := mustParse(t, "y = BUF(x)\neq = EQUIV(y / x)\n")
	m.Name = "aliased"

	report := Run([]*netlist.Module{m}, Options{MaxSteps: 2})
	require.Equal(t, 0, report.Modules[0].Workset)
	require.Equal(t, 0, report.TotalProven())
}
