// Package satadapter wraps a gini incremental SAT solver and its
// associated boolean circuit builder behind the narrow interface the
// induction engine needs: allocate a variable per named signal, build
// AND/OR/XOR/IFF terms over those variables with on-the-fly structural
// sharing, commit the accumulated circuit to CNF, and run
// assume-and-solve queries with an explicit permanent/transient
// assumption scope.
//
// The variable dictionary (Key -> z.Lit) is modeled on the litMapping
// abstraction used by operator-framework/operator-lifecycle-manager's
// SAT-backed dependency resolver, generalized from Identifier strings
// to an arbitrary comparable Key so callers can key variables however
// their domain needs — the induction worker keys by (signal, step).
package satadapter

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// Key identifies a boolean variable in the caller's domain. Any
// comparable value works; the induction worker uses a (SignalBit,
// step) pair.
type Key interface{}

// Adapter is the Solver Adapter: a gini circuit builder plus the
// incremental solver it feeds, and the variable dictionary tying the
// two together.
type Adapter struct {
	circuit *logic.C
	solver  *gini.Gini
	lits    map[Key]z.Lit

	marks     []int8 // CnfSince's persisted visited-node marks, reused across commits
	committed int    // circuit nodes walked by CnfSince so far, for NumClauses
	testDepth int    // number of successful AssumePermanent calls
}

// Option configures an Adapter at construction time.
type Option func(*Adapter)

// WithCapacityHint sizes the circuit and solver's initial variable
// capacity, avoiding reallocation for netlists whose cell count is
// known ahead of time.
func WithCapacityHint(n int) Option {
	return func(a *Adapter) {
		a.circuit = logic.NewCCap(n)
		a.solver = gini.NewV(n)
	}
}

// New constructs an Adapter ready to allocate variables and build
// circuit terms.
func New(opts ...Option) *Adapter {
	a := &Adapter{lits: make(map[Key]z.Lit)}
	for _, opt := range opts {
		opt(a)
	}
	if a.circuit == nil {
		a.circuit = logic.NewC()
	}
	if a.solver == nil {
		a.solver = gini.New()
	}
	return a
}

// LitOf returns the literal for key, allocating a fresh circuit
// variable the first time key is seen.
func (a *Adapter) LitOf(key Key) z.Lit {
	if m, ok := a.lits[key]; ok {
		return m
	}
	m := a.circuit.Lit()
	a.lits[key] = m
	return m
}

// True and False are the circuit's fixed constant literals.
func (a *Adapter) True() z.Lit  { return a.circuit.T }
func (a *Adapter) False() z.Lit { return a.circuit.F }

func (a *Adapter) And(ms ...z.Lit) z.Lit { return a.circuit.Ands(ms...) }
func (a *Adapter) Or(ms ...z.Lit) z.Lit  { return a.circuit.Ors(ms...) }
func (a *Adapter) Xor(x, y z.Lit) z.Lit  { return a.circuit.Xor(x, y) }
func (a *Adapter) Not(x z.Lit) z.Lit     { return x.Not() }

// Iff builds a literal equivalent to "x == y".
func (a *Adapter) Iff(x, y z.Lit) z.Lit { return a.circuit.Xor(x, y).Not() }

// Implies builds a literal equivalent to "x implies y".
func (a *Adapter) Implies(x, y z.Lit) z.Lit { return a.circuit.Implies(x, y) }

// Choice builds a literal equivalent to a ternary mux: i ? t : e.
func (a *Adapter) Choice(i, t, e z.Lit) z.Lit { return a.circuit.Choice(i, t, e) }

// Bind adds a permanent unit clause asserting lit true, independent of
// any assumption scope. Used for structural facts (constant ties,
// output-to-driver bindings) rather than proof-state assumptions.
func (a *Adapter) Bind(lit z.Lit) {
	a.commit(lit)
	a.solver.Add(lit)
	a.solver.Add(0)
}

// commit pushes the Tseitin CNF for every node reachable from roots
// that has not already been pushed in a previous commit. It uses
// CnfSince's persisted marks (rather than ToCnfFrom's always-fresh
// mark) so that a literal shared across many calls — as structural
// sharing in the circuit builder guarantees for repeated subterms —
// is only translated into clauses once, matching how
// operator-framework/operator-lifecycle-manager's own litMapping
// reuses a marks slice across incremental CnfSince calls.
func (a *Adapter) commit(roots ...z.Lit) {
	marks, added := a.circuit.CnfSince(a.solver, a.marks, roots...)
	a.marks = marks
	a.committed += added
}

// AssumePermanent commits the circuit, checks every lit in lits under
// unit propagation inside a Test scope that is popped again at once,
// and then adds each lit as a permanent unit clause: the assumption
// holds for every subsequent Solve/TransientSolve call until the
// worker using this Adapter is discarded, and later Bind calls remain
// possible because no Test scope is left open. It returns an error,
// without adding the clauses, if the assumptions are already
// inconsistent under unit propagation.
func (a *Adapter) AssumePermanent(lits ...z.Lit) error {
	a.commit(lits...)
	a.solver.Assume(lits...)
	res, _ := a.solver.Test(nil)
	a.solver.Untest()
	if res == -1 {
		return errors.New("assumptions are inconsistent under unit propagation")
	}
	for _, lit := range lits {
		a.solver.Add(lit)
		a.solver.Add(0)
	}
	a.testDepth++
	return nil
}

// TransientSolve commits the circuit, assumes every lit in lits inside
// a freshly opened Test scope, runs a full solve under that scope, and
// unconditionally pops the scope again before returning — the
// assumption never survives past this call, whether it turns out SAT
// or UNSAT. This is how the induction worker probes the per-step and
// per-marker fallback queries without disturbing the accumulated
// permanent consistency assumptions added by AssumePermanent.
func (a *Adapter) TransientSolve(lits ...z.Lit) bool {
	a.commit(lits...)
	a.solver.Assume(lits...)
	res, _ := a.solver.Test(nil)
	defer a.solver.Untest()
	if res == -1 {
		return false
	}
	return a.solver.Solve() == 1
}

// Solve runs a one-shot, untested assume-and-solve query: the
// assumptions are consumed and forgotten regardless of outcome,
// without opening a Test scope. Used for queries that need no
// fallback scoping of their own.
func (a *Adapter) Solve(lits ...z.Lit) bool {
	a.commit(lits...)
	a.solver.Assume(lits...)
	return a.solver.Solve() == 1
}

// Value reports the truth value lit took in the most recent
// satisfying model.
func (a *Adapter) Value(lit z.Lit) bool {
	return a.solver.Value(lit)
}

// NumVariables reports the solver's highest variable index, used with
// NumClauses for the worker's per-step progress logging.
func (a *Adapter) NumVariables() int {
	return int(a.solver.MaxVar())
}

// NumClauses reports how many circuit nodes have been translated to
// CNF and pushed to the solver so far, a proxy for clause count
// (each node contributes a small, fixed number of clauses).
func (a *Adapter) NumClauses() int {
	return a.committed
}

// NumPermanentScopes reports how many AssumePermanent calls have
// succeeded so far, used for diagnostics.
func (a *Adapter) NumPermanentScopes() int {
	return a.testDepth
}
