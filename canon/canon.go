// Package canon collapses a netlist's wire aliases onto a single
// canonical SignalBit per net, via a union-find over the module's
// alias relation. Every other component (the encoder, the induction
// worker) consumes signals through a Canonicalizer rather than raw
// SignalBits, so that two differently-named wires on the same net
// always encode to the same SAT variable.
package canon

import (
	"github.com/C-Elegans/yosys/netlist"
)

// Canonicalizer maps every signal bit reachable from a module's
// aliases to a single representative bit for that net.
type Canonicalizer struct {
	parent map[netlist.SignalBit]netlist.SignalBit
}

// Build runs union-find over m's alias relation and returns a ready
// Canonicalizer. It does not mutate m.
func Build(m *netlist.Module) *Canonicalizer {
	c := &Canonicalizer{parent: make(map[netlist.SignalBit]netlist.SignalBit)}
	for _, a := range m.Aliases() {
		c.union(a.A, a.B)
	}
	return c
}

func (c *Canonicalizer) find(b netlist.SignalBit) netlist.SignalBit {
	parent, ok := c.parent[b]
	if !ok {
		c.parent[b] = b
		return b
	}
	if parent == b {
		return b
	}
	root := c.find(parent)
	c.parent[b] = root // path compression
	return root
}

// rank prefers a constant as the representative of its class (a net
// tied to a constant is always driven by that constant), then falls
// back to lexicographic (Wire, Index) order so canonicalization is
// deterministic across runs of the same input.
func rank(b netlist.SignalBit) (int, string, int) {
	if b.IsConst() {
		return 0, "", int(b.Const)
	}
	return 1, b.Wire, b.Index
}

func less(a, b netlist.SignalBit) bool {
	ra, sa, ia := rank(a)
	rb, sb, ib := rank(b)
	if ra != rb {
		return ra < rb
	}
	if sa != sb {
		return sa < sb
	}
	return ia < ib
}

func (c *Canonicalizer) union(a, b netlist.SignalBit) {
	ra, rb := c.find(a), c.find(b)
	if ra == rb {
		return
	}
	if less(ra, rb) {
		c.parent[rb] = ra
	} else {
		c.parent[ra] = rb
	}
}

// Canon returns the canonical representative of bit's net. Bits never
// mentioned in any alias are their own representative.
func (c *Canonicalizer) Canon(bit netlist.SignalBit) netlist.SignalBit {
	return c.find(bit)
}

// CanonBits maps Canon over a port vector, returning a new slice.
func (c *Canonicalizer) CanonBits(bits []netlist.SignalBit) []netlist.SignalBit {
	out := make([]netlist.SignalBit, len(bits))
	for i, b := range bits {
		out[i] = c.Canon(b)
	}
	return out
}
