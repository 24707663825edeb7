package netlist

// Valuation holds the boolean value of every wire bit for a single
// combinational evaluation pass or simulated clock step. Constant
// bits are resolved directly by ValueOf and never stored here.
type Valuation map[SignalBit]bool

// ValueOf resolves the boolean value of a signal bit: constants
// resolve to their fixed value (X and Z are treated as false, since
// this is a best-effort brute-force simulator used only for
// diagnostics, not a source of truth), everything else is looked up in
// v.
func ValueOf(v Valuation, b SignalBit) bool {
	if b.IsConst() {
		return b.Const == Const1
	}
	return v[b]
}

// Set records the value of every bit in bits, in order, from vals.
func (v Valuation) Set(bits []SignalBit, vals []bool) {
	for i, b := range bits {
		if !b.IsConst() {
			v[b] = vals[i]
		}
	}
}

// evalFunc computes a cell's Y port values for one combinational
// evaluation pass, given the current values of its other ports.
// Sequential cells (CellDff, CellLatch) have no evalFunc: their
// current-step output is state, not a function of current-step
// inputs, and is advanced explicitly by the simulator driving a
// Valuation across clock edges.
type evalFunc func(v Valuation, c *Cell) []bool

var evalByKind = map[CellKind]evalFunc{}

func registerEval(k CellKind, f evalFunc) {
	evalByKind[k] = f
}

// Eval computes a cell's output bit values for one combinational pass.
// It reports false as its second return if the cell's kind has no
// registered evaluator (sequential cells and unmodellable types).
func Eval(v Valuation, c *Cell) ([]bool, bool) {
	f, ok := evalByKind[c.Kind]
	if !ok {
		return nil, false
	}
	return f(v, c), true
}
