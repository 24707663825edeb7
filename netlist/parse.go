package netlist

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// This regular expression matches statements of the form:
//
//	V0 = AND(A,X1)
//	V1 = NOT(X1)
//	V2 = DFF(V1)
//	S0 S1 S2 = ADD(a0 a1 a2 / b0 b1 b2)
//	Y0 Y1 = EQUIV(a0 a1 / b0 b1)
//
// The left-hand side is one or more space-separated output wire names
// (multiple names only appear for vector-producing cells such as ADD
// or EQUIV); the right-hand side is a cell kind and its arguments,
// optionally split into "/"-separated groups for vector ports.
var assignRE = regexp.MustCompile(`^([\w\[\]]+(?:\s+[\w\[\]]+)*)\s*=\s*(\w+)\s*\((.*)\)$`)
var ioRE = regexp.MustCompile(`^(INPUT|OUTPUT)\((\w+)\)$`)

var kindByName = map[string]CellKind{
	"AND":        CellAnd,
	"OR":         CellOr,
	"XOR":        CellXor,
	"NAND":       CellNand,
	"NOR":        CellNor,
	"XNOR":       CellXnor,
	"NOT":        CellNot,
	"BUF":        CellBuf,
	"MUX":        CellMux,
	"REDUCE_AND": CellReduceAnd,
	"REDUCE_OR":  CellReduceOr,
	"REDUCE_XOR": CellReduceXor,
	"EQ":         CellEq,
	"NE":         CellNe,
	"ADD":        CellAdd,
	"SUB":        CellSub,
	"LT":         CellLt,
	"LE":         CellLe,
	"GT":         CellGt,
	"GE":         CellGe,
	"SHL":        CellShl,
	"SHR":        CellShr,
	"DFF":        CellDff,
	"LATCH":      CellLatch,
	"EQUIV":      CellEquiv,
}

// vectorKinds is the set of cell kinds whose arguments are grouped
// into "/"-separated port vectors (as opposed to a flat, per-port
// scalar argument list).
var vectorKinds = map[CellKind]bool{
	CellAdd: true, CellSub: true,
	CellLt: true, CellLe: true, CellGt: true, CellGe: true,
	CellShl: true, CellShr: true,
	CellEquiv: true,
}

// ParseModule reads a netlist in the extended .bench format described
// above and returns the resulting Module. The name is used only for
// diagnostics.
func ParseModule(name string, r io.Reader) (*Module, error) {
	m := &Module{Name: name}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := parseLine(m, line); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: %q", name, lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return m, nil
}

func parseLine(m *Module, line string) error {
	if match := ioRE.FindStringSubmatch(line); match != nil {
		bit := SignalBit{Wire: match[2]}
		switch match[1] {
		case "INPUT":
			m.Inputs = append(m.Inputs, bit)
		case "OUTPUT":
			m.Outputs = append(m.Outputs, bit)
		}
		return nil
	}

	match := assignRE.FindStringSubmatch(line)
	if match == nil {
		return errors.Errorf("unrecognized statement")
	}

	lhs := strings.Fields(match[1])
	kindName := match[2]
	kind, ok := kindByName[kindName]
	if !ok {
		// Unmodellable cell type: still parsed so the worker can
		// record a one-shot warning and treat its outputs as free.
		kind = CellUnknown
	}

	cell := &Cell{Name: strings.Join(lhs, ","), Kind: kind, Ports: map[string][]SignalBit{}}

	if vectorKinds[kind] {
		groups := strings.Split(match[3], "/")
		if len(groups) != 2 {
			return errors.Errorf("%s requires two '/'-separated port groups, got %d", kindName, len(groups))
		}
		a := parseBits(groups[0])
		b := parseBits(groups[1])
		if len(a) != len(b) {
			return errors.Errorf("%s port groups have mismatched widths: %d vs %d", kindName, len(a), len(b))
		}
		cell.Ports["A"] = a
		cell.Ports["B"] = b
		y := make([]SignalBit, len(lhs))
		for i, name := range lhs {
			y[i] = SignalBit{Wire: name}
		}
		cell.Ports["Y"] = y
	} else {
		if len(lhs) != 1 {
			return errors.Errorf("%s produces a single output, got %d names on the left-hand side", kindName, len(lhs))
		}
		args := parseBits(match[3])
		switch kind {
		case CellNot, CellBuf, CellDff, CellLatch:
			if len(args) != 1 {
				return errors.Errorf("%s takes exactly one argument, got %d", kindName, len(args))
			}
			cell.Ports["A"] = args
		case CellReduceAnd, CellReduceOr, CellReduceXor:
			if len(args) < 1 {
				return errors.Errorf("%s requires at least one argument, got %d", kindName, len(args))
			}
			cell.Ports["A"] = args
		case CellMux:
			if len(args) != 3 {
				return errors.Errorf("MUX takes exactly three arguments (S,A,B), got %d", len(args))
			}
			cell.Ports["S"] = args[0:1]
			cell.Ports["A"] = args[1:2]
			cell.Ports["B"] = args[2:3]
		default:
			if len(args) != 2 {
				return errors.Errorf("%s takes exactly two arguments, got %d", kindName, len(args))
			}
			cell.Ports["A"] = args[0:1]
			cell.Ports["B"] = args[1:2]
		}
		cell.Ports["Y"] = []SignalBit{{Wire: lhs[0]}}
	}

	if kind == CellBuf {
		m.AddAlias(cell.Ports["Y"][0], cell.Ports["A"][0])
	}

	m.AddCell(cell)
	return nil
}

func parseBits(s string) []SignalBit {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	bits := make([]SignalBit, 0, len(fields))
	for _, f := range fields {
		bits = append(bits, bitFromToken(f))
	}
	return bits
}

func bitFromToken(tok string) SignalBit {
	switch tok {
	case "0":
		return Bit0
	case "1":
		return Bit1
	default:
		return SignalBit{Wire: tok}
	}
}

// FormatBits renders a port vector back into the "a0 a1 a2" textual
// form ParseModule accepts, used by diagnostics and tests.
func FormatBits(bits []SignalBit) string {
	parts := make([]string, len(bits))
	for i, b := range bits {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}
