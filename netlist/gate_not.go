package netlist

// Unary and pass-through combinational cells, plus the MUX selector
// and the EQUIV marker's own simulation semantics (used only by the
// reachability package's brute-force sanity checks, never by the
// encoder).

func init() {
	registerEval(CellNot, func(v Valuation, c *Cell) []bool {
		return []bool{!ValueOf(v, c.Port("A")[0])}
	})
	registerEval(CellBuf, func(v Valuation, c *Cell) []bool {
		return []bool{ValueOf(v, c.Port("A")[0])}
	})
	registerEval(CellMux, func(v Valuation, c *Cell) []bool {
		if ValueOf(v, c.Port("S")[0]) {
			return []bool{ValueOf(v, c.Port("B")[0])}
		}
		return []bool{ValueOf(v, c.Port("A")[0])}
	})
	// EQUIV's Y port is a plain buffer of A, matching its CNF encoding;
	// the marker's A<->B agreement is a separate signal entirely, read
	// via EquivHolds rather than through Y.
	registerEval(CellEquiv, evalBitwise(func(a, b bool) bool { return a }))
}

// EquivHolds reports whether an EQUIV marker's A and B ports agree in
// full under v: the same per-bit agreement the encoder asserts into
// the marker's consistent[] term, independent of the marker's Y port.
func EquivHolds(v Valuation, c *Cell) bool {
	a, b := c.Port("A"), c.Port("B")
	for i := range a {
		if ValueOf(v, a[i]) != ValueOf(v, b[i]) {
			return false
		}
	}
	return true
}
