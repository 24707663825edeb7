package encode

import (
	"github.com/go-air/gini/z"

	"github.com/C-Elegans/yosys/netlist"
)

func init() {
	registerEncode(netlist.CellAnd, encodeBitwise(func(e *Encoder, a, b z.Lit) z.Lit { return e.Adapter.And(a, b) }))
	registerEncode(netlist.CellOr, encodeBitwise(func(e *Encoder, a, b z.Lit) z.Lit { return e.Adapter.Or(a, b) }))
	registerEncode(netlist.CellXor, encodeBitwise(func(e *Encoder, a, b z.Lit) z.Lit { return e.Adapter.Xor(a, b) }))
	registerEncode(netlist.CellNand, encodeBitwise(func(e *Encoder, a, b z.Lit) z.Lit { return e.Adapter.Not(e.Adapter.And(a, b)) }))
	registerEncode(netlist.CellNor, encodeBitwise(func(e *Encoder, a, b z.Lit) z.Lit { return e.Adapter.Not(e.Adapter.Or(a, b)) }))
	registerEncode(netlist.CellXnor, encodeBitwise(func(e *Encoder, a, b z.Lit) z.Lit { return e.Adapter.Iff(a, b) }))

	registerEncode(netlist.CellNot, func(e *Encoder, step int, c *netlist.Cell) {
		a := e.LitAt(step, c.Port("A")[0])
		y := e.LitAt(step, c.Port("Y")[0])
		e.bindEq(y, e.Adapter.Not(a))
	})
	registerEncode(netlist.CellBuf, func(e *Encoder, step int, c *netlist.Cell) {
		// BUF is already folded into a wire alias by the netlist
		// parser (see netlist.ParseModule), so canonicalization makes
		// this a no-op; it is still registered so EncodeCell never
		// treats BUF as unmodellable.
	})
	registerEncode(netlist.CellMux, func(e *Encoder, step int, c *netlist.Cell) {
		s := e.LitAt(step, c.Port("S")[0])
		a := e.LitAt(step, c.Port("A")[0])
		b := e.LitAt(step, c.Port("B")[0])
		y := e.LitAt(step, c.Port("Y")[0])
		e.bindEq(y, e.Adapter.Choice(s, b, a))
	})

	registerEncode(netlist.CellReduceAnd, encodeReduce(func(e *Encoder, acc, bit z.Lit) z.Lit { return e.Adapter.And(acc, bit) }, true))
	registerEncode(netlist.CellReduceOr, encodeReduce(func(e *Encoder, acc, bit z.Lit) z.Lit { return e.Adapter.Or(acc, bit) }, false))
	registerEncode(netlist.CellReduceXor, encodeReduce(func(e *Encoder, acc, bit z.Lit) z.Lit { return e.Adapter.Xor(acc, bit) }, false))

	registerEncode(netlist.CellEq, encodeVectorCompare(func(eq z.Lit) z.Lit { return eq }))
	registerEncode(netlist.CellNe, encodeVectorCompare(func(eq z.Lit) z.Lit { return eq.Not() }))
}

// encodeBitwise lifts a two-input literal-builder to a
// width-independent, per-bit cell encoding over the A and B ports.
func encodeBitwise(f func(e *Encoder, a, b z.Lit) z.Lit) cellEncodeFunc {
	return func(e *Encoder, step int, c *netlist.Cell) {
		a := e.LitsAt(step, c.Port("A"))
		b := e.LitsAt(step, c.Port("B"))
		y := e.LitsAt(step, c.Port("Y"))
		exprs := make([]z.Lit, len(a))
		for i := range a {
			exprs[i] = f(e, a[i], b[i])
		}
		e.bindVec(y, exprs)
	}
}

// encodeReduce folds the A port vector with f, seeded by identity,
// and binds the single Y bit to the result.
func encodeReduce(f func(e *Encoder, acc, bit z.Lit) z.Lit, identity bool) cellEncodeFunc {
	return func(e *Encoder, step int, c *netlist.Cell) {
		a := e.LitsAt(step, c.Port("A"))
		var acc z.Lit
		if identity {
			acc = e.Adapter.True()
		} else {
			acc = e.Adapter.False()
		}
		for _, bit := range a {
			acc = f(e, acc, bit)
		}
		y := e.LitAt(step, c.Port("Y")[0])
		e.bindEq(y, acc)
	}
}

// encodeVectorCompare builds bitwise equality across the A and B port
// vectors and binds the single Y bit to f(equal).
func encodeVectorCompare(f func(eq z.Lit) z.Lit) cellEncodeFunc {
	return func(e *Encoder, step int, c *netlist.Cell) {
		a := e.LitsAt(step, c.Port("A"))
		b := e.LitsAt(step, c.Port("B"))
		eq := e.Adapter.True()
		for i := range a {
			eq = e.Adapter.And(eq, e.Adapter.Iff(a[i], b[i]))
		}
		y := e.LitAt(step, c.Port("Y")[0])
		e.bindEq(y, f(eq))
	}
}
