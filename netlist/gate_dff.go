package netlist

// Sequential state elements (DFF, LATCH) have no evalFunc: their
// current-step Q value is state carried across a clock edge, not a
// combinational function of their current-step D input. They are
// deliberately absent from evalByKind; Eval reports ok=false for them.
//
// StepState advances every sequential cell in m by one clock edge,
// copying each cell's D port value (evaluated in the prior step's
// Valuation) onto its Q port value in next. It is used only by the
// reachability package's brute-force state-space walk, never by the
// encoder, which gives sequential cells their own step-indexed
// variables instead of simulating them.
func StepState(m *Module, prev, next Valuation) {
	for _, c := range m.SelectedCells() {
		switch c.Kind {
		case CellDff, CellLatch:
			d := c.Port("A")
			q := c.Port("Y")
			for i := range d {
				next[q[i]] = ValueOf(prev, d[i])
			}
		}
	}
}
