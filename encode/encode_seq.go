package encode

import "github.com/C-Elegans/yosys/netlist"

func init() {
	registerEncode(netlist.CellDff, encodeSequential)
	registerEncode(netlist.CellLatch, encodeSequential)
}

// encodeSequential ties a register's output at step to its D input at
// step-1. At step 0 — the base case, before any clock edge has been
// simulated — the register's initial state is unconstrained: this
// worker proves weak equivalence only, so no reset value is assumed,
// and Y is left as a free variable at step 0.
//
// LATCH is given the same step-boundary semantics as DFF: this
// netlist format carries no separate enable signal, so a latch is
// indistinguishable from an edge-triggered register at this level of
// abstraction.
func encodeSequential(e *Encoder, step int, c *netlist.Cell) {
	if step == 0 {
		return
	}
	d := e.LitsAt(step-1, c.Port("A"))
	y := e.LitsAt(step, c.Port("Y"))
	e.bindVec(y, d)
}
