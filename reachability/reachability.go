// Package reachability performs bounded, brute-force state-space
// exploration over a netlist. It exists purely as a diagnostic safety
// net: the induction engine's "proven" verdicts are never a substitute
// for this kind of exhaustive check on the small netlists it is
// practical to run on, but agreement between the two is a useful
// property-based sanity test.
//
// The state-space walk itself — fan a frontier of states out across a
// pool of worker goroutines, each expanding every input combination of
// its assigned states over a channel — is adapted directly from the
// reachability search the induction engine's ancestor tool used to
// verify flip-flop state machines before any SAT solver was involved.
package reachability

import (
	"fmt"
	"sync"

	"github.com/C-Elegans/yosys/netlist"
)

// Violation records a proven-equivalence marker that a reachable state
// nonetheless drove false.
type Violation struct {
	Cell   string
	State  string
	Inputs string
}

// Report summarizes one bounded exploration run.
type Report struct {
	StatesExplored int
	Violations     []Violation
}

// registers returns the module's DFF/LATCH cells in visit order; their
// Y ports form the state vector's bit ordering.
func registers(m *netlist.Module) []*netlist.Cell {
	var regs []*netlist.Cell
	for _, c := range m.SelectedCells() {
		if c.Kind == netlist.CellDff || c.Kind == netlist.CellLatch {
			regs = append(regs, c)
		}
	}
	return regs
}

func encodeState(v netlist.Valuation, regs []*netlist.Cell) string {
	buf := make([]byte, 0, len(regs))
	for _, c := range regs {
		if netlist.ValueOf(v, c.Port("Y")[0]) {
			buf = append(buf, '1')
		} else {
			buf = append(buf, '0')
		}
	}
	return string(buf)
}

func decodeState(state string, regs []*netlist.Cell, v netlist.Valuation) {
	for i, c := range regs {
		v[c.Port("Y")[0]] = state[i] == '1'
	}
}

func encodeInputs(mask uint64, inputs []netlist.SignalBit, v netlist.Valuation) string {
	buf := make([]byte, len(inputs))
	for i, in := range inputs {
		on := mask&(1<<uint(i)) != 0
		v[in] = on
		if on {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// settle runs a fixed-point pass over m's combinational cells until
// every cell's output is a function of already-settled inputs.
// len(cells)+1 passes is always sufficient for an acyclic netlist: each
// pass propagates a value at least one cell further than the last.
func settle(m *netlist.Module, v netlist.Valuation) {
	cells := m.SelectedCells()
	for pass := 0; pass <= len(cells); pass++ {
		for _, c := range cells {
			vals, ok := netlist.Eval(v, c)
			if !ok {
				continue
			}
			v.Set(c.Port("Y"), vals)
		}
	}
}

// Explore performs a breadth-first walk of m's reachable state space,
// starting from the all-zero register state, out to maxSteps clock
// edges. workers goroutines expand the frontier concurrently, one
// state per goroutine invocation, fanning out over every input
// combination of that state. checkCells (expected to be EQUIV markers)
// have their A and B ports compared directly in every settled
// valuation visited; any that disagree is recorded as a Violation
// naming the offending state and inputs.
func Explore(m *netlist.Module, maxSteps, workers int, checkCells []*netlist.Cell) Report {
	if workers < 1 {
		workers = 1
	}
	regs := registers(m)
	initial := encodeState(netlist.Valuation{}, regs)

	visited := map[string]bool{initial: true}
	frontier := []string{initial}
	report := Report{}

	type expansion struct {
		next       []string
		violations []Violation
	}

	for step := 0; step < maxSteps && len(frontier) > 0; step++ {
		work := make(chan string, len(frontier))
		results := make(chan expansion, len(frontier))
		var wg sync.WaitGroup

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for state := range work {
					results <- expandState(m, regs, state, checkCells)
				}
			}()
		}
		for _, s := range frontier {
			work <- s
		}
		close(work)
		wg.Wait()
		close(results)

		var next []string
		for r := range results {
			report.Violations = append(report.Violations, r.violations...)
			for _, s := range r.next {
				if !visited[s] {
					visited[s] = true
					next = append(next, s)
				}
			}
		}
		frontier = next
	}

	report.StatesExplored = len(visited)
	return report
}

func expandState(m *netlist.Module, regs []*netlist.Cell, state string, checkCells []*netlist.Cell) (result struct {
	next       []string
	violations []Violation
}) {
	n := len(m.Inputs)
	combos := uint64(1) << uint(n)
	seenNext := map[string]bool{}

	for mask := uint64(0); mask < combos; mask++ {
		v := netlist.Valuation{}
		decodeState(state, regs, v)
		inputsStr := encodeInputs(mask, m.Inputs, v)
		settle(m, v)

		for _, c := range checkCells {
			if !netlist.EquivHolds(v, c) {
				result.violations = append(result.violations, Violation{
					Cell: c.Name, State: state, Inputs: inputsStr,
				})
			}
		}

		next := netlist.Valuation{}
		stepImpl(m, v, next)
		nextState := encodeState(next, regs)
		if !seenNext[nextState] {
			seenNext[nextState] = true
			result.next = append(result.next, nextState)
		}
	}
	return result
}

func stepImpl(m *netlist.Module, settled, next netlist.Valuation) {
	netlist.StepState(m, settled, next)
}

// String renders a Violation for log output.
func (v Violation) String() string {
	return fmt.Sprintf("cell %s: state %s, inputs %s", v.Cell, v.State, v.Inputs)
}
