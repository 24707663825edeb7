// Package encode translates netlist cells into CNF constraints over a
// satadapter.Adapter, one clock step at a time. Each cell kind gets
// its own Tseitin encoding registered against a CellKind dispatch
// table, mirroring the tagged-variant dispatch netlist's simulator
// uses instead of an open-coded type-string switch.
package encode

import (
	"github.com/go-air/gini/z"
	"github.com/sirupsen/logrus"

	"github.com/C-Elegans/yosys/canon"
	"github.com/C-Elegans/yosys/netlist"
	"github.com/C-Elegans/yosys/satadapter"
)

// stepKey names a single SAT variable: a canonicalized signal bit at
// a given clock step. Two cells that read or drive the same net at
// the same step always resolve to the same variable.
type stepKey struct {
	Bit  netlist.SignalBit
	Step int
}

// Encoder holds the per-module state needed to encode cells into CNF:
// the solver adapter doing variable/clause bookkeeping, the
// canonicalizer resolving wire aliases, and the one-shot-per-kind
// warning state for cell kinds with no registered encoding.
type Encoder struct {
	Adapter *satadapter.Adapter
	Canon   *canon.Canonicalizer

	log    *logrus.Entry
	warned map[netlist.CellKind]bool
}

// New constructs an Encoder over the given adapter and canonicalizer.
func New(a *satadapter.Adapter, c *canon.Canonicalizer, log *logrus.Entry) *Encoder {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Encoder{Adapter: a, Canon: c, log: log, warned: make(map[netlist.CellKind]bool)}
}

// LitAt returns the literal for bit at the given step, resolving
// constants directly to the adapter's fixed True/False literals
// without allocating a variable.
func (e *Encoder) LitAt(step int, bit netlist.SignalBit) z.Lit {
	cb := e.Canon.Canon(bit)
	if cb.IsConst() {
		if cb.Const == netlist.Const1 {
			return e.Adapter.True()
		}
		return e.Adapter.False()
	}
	return e.Adapter.LitOf(stepKey{Bit: cb, Step: step})
}

// LitsAt maps LitAt over a port vector.
func (e *Encoder) LitsAt(step int, bits []netlist.SignalBit) []z.Lit {
	out := make([]z.Lit, len(bits))
	for i, b := range bits {
		out[i] = e.LitAt(step, b)
	}
	return out
}

// bindEq asserts y == expr as a permanent clause.
func (e *Encoder) bindEq(y, expr z.Lit) {
	e.Adapter.Bind(e.Adapter.Iff(y, expr))
}

// bindVec asserts ys[i] == exprs[i] for every index.
func (e *Encoder) bindVec(ys, exprs []z.Lit) {
	for i := range ys {
		e.bindEq(ys[i], exprs[i])
	}
}

type cellEncodeFunc func(e *Encoder, step int, c *netlist.Cell)

var encodeByKind = map[netlist.CellKind]cellEncodeFunc{}

func registerEncode(k netlist.CellKind, f cellEncodeFunc) {
	encodeByKind[k] = f
}

// EncodeCell adds the CNF constraints tying c's Y port to its other
// ports at the given step. It returns false the first (and every
// subsequent) time it sees a cell kind with no registered encoding,
// having logged a one-shot warning; c's outputs are then left as free
// variables, matching the worker's treatment of unmodellable cells.
func (e *Encoder) EncodeCell(step int, c *netlist.Cell) bool {
	f, ok := encodeByKind[c.Kind]
	if !ok {
		if !e.warned[c.Kind] {
			e.warned[c.Kind] = true
			e.log.WithField("kind", c.Kind.String()).WithField("cell", c.Name).
				Warn("cell kind has no CNF encoding; treating its outputs as free")
		}
		return false
	}
	f(e, step, c)
	return true
}
