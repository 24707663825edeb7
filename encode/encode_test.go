package encode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/C-Elegans/yosys/canon"
	"github.com/C-Elegans/yosys/netlist"
	"github.com/C-Elegans/yosys/satadapter"
)

func newEncoder(t *testing.T, m *netlist.Module) *Encoder {
	t.Helper()
	c := canon.Build(m)
	a := satadapter.New()
	return New(a, c, nil)
}

func TestEncodeAndIsSatisfiable(t *testing.T) {
	m, err := netlist.ParseModule("frag", strings.NewReader("y = AND(a,b)\n"))
	require.NoError(t, err)

	e := newEncoder(t, m)
	require.True(t, e.EncodeCell(0, m.SelectedCells()[0]))

	y := e.LitAt(0, netlist.SignalBit{Wire: "y"})
	e.Adapter.Bind(y)
	require.True(t, e.Adapter.Solve())
	require.True(t, e.Adapter.Value(e.LitAt(0, netlist.SignalBit{Wire: "a"})))
	require.True(t, e.Adapter.Value(e.LitAt(0, netlist.SignalBit{Wire: "b"})))
}

func TestEncodeUnknownCellWarnsOnce(t *testing.T) {
	m, err := netlist.ParseModule("frag", strings.NewReader("y = WEIRDGATE(a,b)\n"))
	require.NoError(t, err)

	e := newEncoder(t, m)
	require.False(t, e.EncodeCell(0, m.SelectedCells()[0]))
	require.True(t, e.warned[netlist.CellUnknown])
}

func TestEncodeSequentialTiesOutputToPreviousStepInput(t *testing.T) {
	m, err := netlist.ParseModule("frag", strings.NewReader("q = DFF(d)\n"))
	require.NoError(t, err)

	e := newEncoder(t, m)
	require.True(t, e.EncodeCell(0, m.SelectedCells()[0]))
	require.True(t, e.EncodeCell(1, m.SelectedCells()[0]))

	// At step 1, q must equal d at step 0.
	q1 := e.LitAt(1, netlist.SignalBit{Wire: "q"})
	d0 := e.LitAt(0, netlist.SignalBit{Wire: "d"})
	e.Adapter.Bind(d0)
	require.True(t, e.Adapter.Solve())
	require.True(t, e.Adapter.Value(q1))
}

func TestEncodeEquivMarkerAndConsistency(t *testing.T) {
	m, err := netlist.ParseModule("frag", strings.NewReader("eq = EQUIV(a / b)\n"))
	require.NoError(t, err)

	e := newEncoder(t, m)
	marker := m.SelectedCells()[0]
	require.True(t, e.EncodeCell(0, marker))

	consistent := e.ConsistentAt(0, []*netlist.Cell{marker})
	a := e.LitAt(0, netlist.SignalBit{Wire: "a"})
	b := e.LitAt(0, netlist.SignalBit{Wire: "b"})

	e.Adapter.Bind(consistent)
	require.True(t, e.Adapter.Solve())
	require.Equal(t, e.Adapter.Value(a), e.Adapter.Value(b))
}

func TestEncodeAddWraps(t *testing.T) {
	m, err := netlist.ParseModule("frag", strings.NewReader("s0 s1 = ADD(a0 a1 / b0 b1)\n"))
	require.NoError(t, err)

	e := newEncoder(t, m)
	c := m.SelectedCells()[0]
	require.True(t, e.EncodeCell(0, c))

	a0 := e.LitAt(0, netlist.SignalBit{Wire: "a0"})
	a1 := e.LitAt(0, netlist.SignalBit{Wire: "a1"})
	b0 := e.LitAt(0, netlist.SignalBit{Wire: "b0"})
	b1 := e.LitAt(0, netlist.SignalBit{Wire: "b1"})
	// a = 11 (3), b = 01 (1) -> sum = 4 mod 4 = 0 -> s0=0, s1=0
	e.Adapter.Bind(a0)
	e.Adapter.Bind(a1)
	e.Adapter.Bind(b0)
	e.Adapter.Bind(e.Adapter.Not(b1))
	require.True(t, e.Adapter.Solve())

	s0 := e.LitAt(0, netlist.SignalBit{Wire: "s0"})
	s1 := e.LitAt(0, netlist.SignalBit{Wire: "s1"})
	require.False(t, e.Adapter.Value(s0))
	require.False(t, e.Adapter.Value(s1))
}
