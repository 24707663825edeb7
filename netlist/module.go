package netlist

// Alias records a direct wire-to-wire connection as parsed from the
// netlist (ParseModule records one for every BUF passthrough). The signal
// canonicalizer (package canon) consumes the full alias list to build
// its union-find.
type Alias struct {
	A, B SignalBit
}

// Module is a named container holding an ordered set of cells and the
// wire aliases connecting them. Modules are processed independently by
// the induction driver.
type Module struct {
	Name    string
	Inputs  []SignalBit
	Outputs []SignalBit

	cells   []*Cell
	aliases []Alias
}

// AddCell appends a cell to the module in parse order. Cell visit
// order is significant: the encoder's variable allocation is a
// function of (cell visit order, step), so two parses of the same
// source produce identical CNF up to variable numbering only if cells
// are always iterated in this order.
func (m *Module) AddCell(c *Cell) {
	m.cells = append(m.cells, c)
}

// AddAlias records a direct wire alias for the canonicalizer.
func (m *Module) AddAlias(a, b SignalBit) {
	m.aliases = append(m.aliases, Alias{A: a, B: b})
}

// SelectedCells returns an ordered iteration over the module's cells.
// A real host would filter this by an opaque selection; this
// implementation has no selection language of its own (out of scope
// per the induction core's external-collaborator boundary) and simply
// returns every cell.
func (m *Module) SelectedCells() []*Cell {
	return m.cells
}

// Aliases returns the module's wire-alias relation.
func (m *Module) Aliases() []Alias {
	return m.aliases
}

// EquivCells returns every CellEquiv cell in the module, in visit
// order.
func (m *Module) EquivCells() []*Cell {
	var out []*Cell
	for _, c := range m.cells {
		if c.Kind == CellEquiv {
			out = append(out, c)
		}
	}
	return out
}
