package encode

import (
	"github.com/go-air/gini/z"

	"github.com/C-Elegans/yosys/netlist"
)

func init() {
	registerEncode(netlist.CellEquiv, func(e *Encoder, step int, c *netlist.Cell) {
		a := e.LitsAt(step, c.Port("A"))
		y := e.LitsAt(step, c.Port("Y"))
		e.bindVec(y, a)
	})
}

// MarkerLit returns the single literal summarizing whether an EQUIV
// cell's A and B ports agree in full, at the given step: the
// conjunction of per-bit A<->B agreement. This is wholly independent
// of the cell's Y port, which is wired as a plain buffer of A rather
// than reused to carry the agreement signal.
func (e *Encoder) MarkerLit(step int, marker *netlist.Cell) z.Lit {
	a := e.LitsAt(step, marker.Port("A"))
	b := e.LitsAt(step, marker.Port("B"))
	agree := make([]z.Lit, len(a))
	for i := range a {
		agree[i] = e.Adapter.Iff(a[i], b[i])
	}
	return e.Adapter.And(agree...)
}

// ConsistentAt returns a literal true exactly when every marker in
// markers agrees on its A and B ports at the given step — the
// induction worker's consistent[step] term.
func (e *Encoder) ConsistentAt(step int, markers []*netlist.Cell) z.Lit {
	lits := make([]z.Lit, len(markers))
	for i, m := range markers {
		lits[i] = e.MarkerLit(step, m)
	}
	return e.Adapter.And(lits...)
}
