package netlist

// Arithmetic and shift cells. Port vectors are bit-0-first (the least
// significant bit is element 0), matching the order ParseModule
// assigns left-to-right within a "/"-separated group.

func init() {
	registerEval(CellAdd, evalAdd(false))
	registerEval(CellSub, evalAdd(true))
	registerEval(CellLt, evalCompareOrder(func(lt, eq bool) bool { return lt }))
	registerEval(CellLe, evalCompareOrder(func(lt, eq bool) bool { return lt || eq }))
	registerEval(CellGt, evalCompareOrder(func(lt, eq bool) bool { return !lt && !eq }))
	registerEval(CellGe, evalCompareOrder(func(lt, eq bool) bool { return !lt || eq }))
	registerEval(CellShl, evalShift(true))
	registerEval(CellShr, evalShift(false))
}

func bitsToUint(v Valuation, bits []SignalBit) uint64 {
	var n uint64
	for i, b := range bits {
		if ValueOf(v, b) {
			n |= 1 << uint(i)
		}
	}
	return n
}

func uintToBits(n uint64, width int) []bool {
	out := make([]bool, width)
	for i := range out {
		out[i] = n&(1<<uint(i)) != 0
	}
	return out
}

// evalAdd computes Y = A+B, or Y = A-B when sub is true, modulo 2^width.
func evalAdd(sub bool) evalFunc {
	return func(v Valuation, c *Cell) []bool {
		a := c.Port("A")
		width := len(a)
		an := bitsToUint(v, a)
		bn := bitsToUint(v, c.Port("B"))
		var sum uint64
		if sub {
			sum = an - bn
		} else {
			sum = an + bn
		}
		mask := uint64(1)<<uint(width) - 1
		return uintToBits(sum&mask, width)
	}
}

// evalCompareOrder computes the unsigned (or signed, per c.Params.Signed)
// ordering of A against B and passes (lt, eq) through pick.
func evalCompareOrder(pick func(lt, eq bool) bool) evalFunc {
	return func(v Valuation, c *Cell) []bool {
		a := c.Port("A")
		an := bitsToUint(v, a)
		bn := bitsToUint(v, c.Port("B"))
		if c.Params.Signed {
			width := uint(len(a))
			sa := int64(an<<(64-width)) >> (64 - width)
			sb := int64(bn<<(64-width)) >> (64 - width)
			return []bool{pick(sa < sb, sa == sb)}
		}
		return []bool{pick(an < bn, an == bn)}
	}
}

// evalShift computes Y = A<<B (left) or A>>B (right), both logical,
// modulo 2^width, where B is read as an unsigned shift amount.
func evalShift(left bool) evalFunc {
	return func(v Valuation, c *Cell) []bool {
		a := c.Port("A")
		width := len(a)
		an := bitsToUint(v, a)
		shift := bitsToUint(v, c.Port("B"))
		mask := uint64(1)<<uint(width) - 1
		var n uint64
		if shift >= uint64(width) {
			n = 0
		} else if left {
			n = (an << shift) & mask
		} else {
			n = an >> shift
		}
		return uintToBits(n, width)
	}
}
