package encode

import (
	"github.com/go-air/gini/z"

	"github.com/C-Elegans/yosys/netlist"
)

func init() {
	registerEncode(netlist.CellAdd, encodeAddSub(false))
	registerEncode(netlist.CellSub, encodeAddSub(true))
	registerEncode(netlist.CellLt, encodeCompare(func(lt, eq z.Lit, e *Encoder) z.Lit { return lt }))
	registerEncode(netlist.CellLe, encodeCompare(func(lt, eq z.Lit, e *Encoder) z.Lit { return e.Adapter.Or(lt, eq) }))
	registerEncode(netlist.CellGt, encodeCompare(func(lt, eq z.Lit, e *Encoder) z.Lit {
		return e.Adapter.Not(e.Adapter.Or(lt, eq))
	}))
	registerEncode(netlist.CellGe, encodeCompare(func(lt, eq z.Lit, e *Encoder) z.Lit { return e.Adapter.Not(lt) }))
	registerEncode(netlist.CellShl, encodeShift(true))
	registerEncode(netlist.CellShr, encodeShift(false))
}

// ripple builds a Tseitin ripple-carry adder (or, with subtract set,
// a subtractor via two's-complement addition: a + ~b + 1) over literal
// vectors of equal width, returning the sum bits and the final carry.
func ripple(e *Encoder, a, b []z.Lit, subtract bool) (sum []z.Lit, carryOut z.Lit) {
	var carry z.Lit
	if subtract {
		carry = e.Adapter.True()
	} else {
		carry = e.Adapter.False()
	}
	sum = make([]z.Lit, len(a))
	for i := range a {
		bi := b[i]
		if subtract {
			bi = e.Adapter.Not(bi)
		}
		axb := e.Adapter.Xor(a[i], bi)
		sum[i] = e.Adapter.Xor(axb, carry)
		carry = e.Adapter.Or(e.Adapter.And(a[i], bi), e.Adapter.And(carry, axb))
	}
	return sum, carry
}

func encodeAddSub(subtract bool) cellEncodeFunc {
	return func(e *Encoder, step int, c *netlist.Cell) {
		a := e.LitsAt(step, c.Port("A"))
		b := e.LitsAt(step, c.Port("B"))
		sum, _ := ripple(e, a, b, subtract)
		y := e.LitsAt(step, c.Port("Y"))
		e.bindVec(y, sum)
	}
}

// signAdjust flips the sign (top) bit of a literal vector so that an
// unsigned magnitude comparison of the adjusted vectors agrees with a
// signed comparison of the originals.
func signAdjust(e *Encoder, lits []z.Lit, signed bool) []z.Lit {
	if !signed || len(lits) == 0 {
		return lits
	}
	out := append([]z.Lit(nil), lits...)
	top := len(out) - 1
	out[top] = e.Adapter.Not(out[top])
	return out
}

// compareOrder returns (lt, eq) literals for the magnitude comparison
// of a against b, most-significant bit first.
func compareOrder(e *Encoder, a, b []z.Lit, signed bool) (lt, eq z.Lit) {
	a = signAdjust(e, a, signed)
	b = signAdjust(e, b, signed)
	lt = e.Adapter.False()
	eq = e.Adapter.True()
	for i := len(a) - 1; i >= 0; i-- {
		bitLt := e.Adapter.And(e.Adapter.Not(a[i]), b[i])
		lt = e.Adapter.Or(lt, e.Adapter.And(eq, bitLt))
		eq = e.Adapter.And(eq, e.Adapter.Iff(a[i], b[i]))
	}
	return lt, eq
}

func encodeCompare(pick func(lt, eq z.Lit, e *Encoder) z.Lit) cellEncodeFunc {
	return func(e *Encoder, step int, c *netlist.Cell) {
		a := e.LitsAt(step, c.Port("A"))
		b := e.LitsAt(step, c.Port("B"))
		lt, eq := compareOrder(e, a, b, c.Params.Signed)
		y := e.LitAt(step, c.Port("Y")[0])
		e.bindEq(y, pick(lt, eq, e))
	}
}

// muxVec builds, bit for bit, Choice(sel, whenTrue[i], whenFalse[i]).
func muxVec(e *Encoder, sel z.Lit, whenTrue, whenFalse []z.Lit) []z.Lit {
	out := make([]z.Lit, len(whenFalse))
	for i := range out {
		out[i] = e.Adapter.Choice(sel, whenTrue[i], whenFalse[i])
	}
	return out
}

// encodeShift builds a log-depth barrel shifter: one Choice stage per
// bit of the shift amount, each stage shifting by a power of two.
// Bits shifted in from outside the vector's width are zero (logical
// shift).
func encodeShift(left bool) cellEncodeFunc {
	return func(e *Encoder, step int, c *netlist.Cell) {
		a := e.LitsAt(step, c.Port("A"))
		shamt := e.LitsAt(step, c.Port("B"))
		width := len(a)

		cur := a
		for k, bit := range shamt {
			amount := 1 << uint(k)
			shifted := make([]z.Lit, width)
			for i := 0; i < width; i++ {
				srcIdx := i - amount
				if !left {
					srcIdx = i + amount
				}
				if srcIdx < 0 || srcIdx >= width {
					shifted[i] = e.Adapter.False()
				} else {
					shifted[i] = cur[srcIdx]
				}
			}
			cur = muxVec(e, bit, shifted, cur)
		}
		y := e.LitsAt(step, c.Port("Y"))
		e.bindVec(y, cur)
	}
}
