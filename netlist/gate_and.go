package netlist

// Bitwise combinational gates: AND, OR, XOR, NAND, NOR, XNOR, REDUCE_*,
// and the two-vector equality comparators EQ/NE. Each is a direct,
// width-independent fold over the A/B port vectors.

func init() {
	registerEval(CellAnd, evalBitwise(func(a, b bool) bool { return a && b }))
	registerEval(CellOr, evalBitwise(func(a, b bool) bool { return a || b }))
	registerEval(CellXor, evalBitwise(func(a, b bool) bool { return a != b }))
	registerEval(CellNand, evalBitwise(func(a, b bool) bool { return !(a && b) }))
	registerEval(CellNor, evalBitwise(func(a, b bool) bool { return !(a || b) }))
	registerEval(CellXnor, evalBitwise(func(a, b bool) bool { return a == b }))

	registerEval(CellReduceAnd, evalReduce(func(acc, bit bool) bool { return acc && bit }, true))
	registerEval(CellReduceOr, evalReduce(func(acc, bit bool) bool { return acc || bit }, false))
	registerEval(CellReduceXor, evalReduce(func(acc, bit bool) bool { return acc != bit }, false))

	registerEval(CellEq, evalCompareVec(func(eq bool) bool { return eq }))
	registerEval(CellNe, evalCompareVec(func(eq bool) bool { return !eq }))
}

// evalBitwise lifts a scalar two-input boolean function to a
// width-independent per-bit evaluator over the A and B port vectors.
func evalBitwise(f func(a, b bool) bool) evalFunc {
	return func(v Valuation, c *Cell) []bool {
		a := c.Port("A")
		b := c.Port("B")
		out := make([]bool, len(a))
		for i := range a {
			out[i] = f(ValueOf(v, a[i]), ValueOf(v, b[i]))
		}
		return out
	}
}

// evalReduce folds the A port vector down to a single output bit
// using f, seeded with identity.
func evalReduce(f func(acc, bit bool) bool, identity bool) evalFunc {
	return func(v Valuation, c *Cell) []bool {
		acc := identity
		for _, bit := range c.Port("A") {
			acc = f(acc, ValueOf(v, bit))
		}
		return []bool{acc}
	}
}

// evalCompareVec compares the A and B port vectors for bitwise
// equality and passes the result through f (identity for EQ, negation
// for NE).
func evalCompareVec(f func(eq bool) bool) evalFunc {
	return func(v Valuation, c *Cell) []bool {
		a := c.Port("A")
		b := c.Port("B")
		eq := true
		for i := range a {
			if ValueOf(v, a[i]) != ValueOf(v, b[i]) {
				eq = false
				break
			}
		}
		return []bool{f(eq)}
	}
}
