// Package induct implements the induction worker: given a module and
// a workset of currently-unproven equivalence markers, it runs
// k-step temporal induction (growing k up to a caller-supplied bound)
// to decide which markers can be proven equivalent, falling back to
// independent per-marker proofs for whichever markers the joint
// induction could not settle.
package induct

import (
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/C-Elegans/yosys/canon"
	"github.com/C-Elegans/yosys/encode"
	"github.com/C-Elegans/yosys/netlist"
	"github.com/C-Elegans/yosys/satadapter"
)

// Outcome classifies how a Run concluded.
type Outcome int

const (
	// Diverged means no marker could be proven: the joint induction
	// did not hold (its base case failed, a later depth diverged, or
	// the step bound ran out), and the per-marker fallback pass also
	// failed for every marker in the workset.
	Diverged Outcome = iota
	// Partial means some, but not all, markers in the workset were
	// proven via the per-marker fallback pass.
	Partial
	// AllProven means every marker in the workset was proven, either
	// by joint induction holding at some step, or by the fallback
	// pass succeeding for each one individually.
	AllProven
)

func (o Outcome) String() string {
	switch o {
	case Diverged:
		return "diverged"
	case Partial:
		return "partial"
	case AllProven:
		return "all proven"
	default:
		return "unknown"
	}
}

// Result is the outcome of one worker run over a module's workset.
type Result struct {
	Outcome Outcome
	Proven  []*netlist.Cell
	Steps   int
}

// Worker runs temporal induction over a single module's workset of
// unproven equivalence markers.
type Worker struct {
	Module   *netlist.Module
	Markers  []*netlist.Cell
	MaxSteps int

	canon   *canon.Canonicalizer
	adapter *satadapter.Adapter
	enc     *encode.Encoder
	log     *logrus.Entry

	lastStep     int
	consistentAt map[int]z.Lit
}

// New constructs a Worker for module, proving the given markers (the
// module's currently-unproven workset) out to maxSteps induction
// depth.
func New(module *netlist.Module, markers []*netlist.Cell, maxSteps int, log *logrus.Entry) *Worker {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	c := canon.Build(module)
	a := satadapter.New(satadapter.WithCapacityHint(len(module.SelectedCells()) * 4))
	return &Worker{
		Module:       module,
		Markers:      markers,
		MaxSteps:     maxSteps,
		canon:        c,
		adapter:      a,
		enc:          encode.New(a, c, log),
		log:          log.WithField("module", module.Name),
		consistentAt: make(map[int]z.Lit),
	}
}

// createTimestep encodes every cell in the module at the given step
// and records that step's consistent[] literal (the conjunction of
// every workset marker agreeing at this step). Visiting cells in the
// module's fixed order keeps variable allocation — and therefore CNF
// variable numbering — deterministic across runs of the same input.
func (w *Worker) createTimestep(step int) {
	for _, c := range w.Module.SelectedCells() {
		w.enc.EncodeCell(step, c)
	}
	w.consistentAt[step] = w.enc.ConsistentAt(step, w.Markers)
	w.lastStep = step
}

// assumePermanentConsistent seals consistent[step] into the worker's
// permanent assumption scope. It panics if doing so reveals an
// internal inconsistency: the caller is expected to have already
// confirmed consistent[step] is satisfiable via a full solve before
// calling this, so a BCP-level contradiction here indicates a bug in
// the encoder rather than a genuine proof failure.
func (w *Worker) assumePermanentConsistent(step int) {
	if err := w.adapter.AssumePermanent(w.consistentAt[step]); err != nil {
		panic(errors.Wrapf(err, "consistent[%d] became inconsistent immediately after being proven satisfiable", step))
	}
}

// Run executes the worker's state machine: Stepping(i) -> Stepping'(i)
// -> AllProven | Diverged | Fallback -> Partial, as described by the
// induction algorithm this worker implements.
func (w *Worker) Run() Result {
	w.createTimestep(0)
	w.log.WithFields(logrus.Fields{
		"markers": len(w.Markers),
	}).Info("starting induction")

	if !w.adapter.Solve(w.consistentAt[0]) {
		w.log.Warn("induction inherently diverges: markers cannot even agree at step 0")
		return w.fallback(0)
	}
	w.assumePermanentConsistent(0)

	for step := 0; step < w.MaxSteps; step++ {
		w.createTimestep(step + 1)
		w.log.WithFields(logrus.Fields{
			"step":      step + 1,
			"variables": w.adapter.NumVariables(),
			"clauses":   w.adapter.NumClauses(),
		}).Info("checking induction step")

		if !w.adapter.TransientSolve(w.adapter.Not(w.consistentAt[step+1])) {
			w.log.WithField("step", step+1).Info("induction step holds")
			return w.proveAll(step + 1)
		}

		if !w.adapter.Solve(w.consistentAt[step+1]) {
			w.log.WithField("step", step+1).Warn("induction inherently diverges at this depth")
			return w.fallback(step)
		}
		w.assumePermanentConsistent(step + 1)
	}

	w.log.WithField("maxSteps", w.MaxSteps).
		Warn("induction step bound exhausted without holding; falling back to per-marker proofs")
	return w.fallback(w.lastStep)
}

// proveAll records every workset marker as proven: its B port is
// aliased onto its A port, the one netlist mutation this worker
// performs, so that later passes see the two sides as structurally
// identical.
func (w *Worker) proveAll(atStep int) Result {
	for _, m := range w.Markers {
		m.SetPort("B", m.Port("A"))
	}
	return Result{Outcome: AllProven, Proven: w.Markers, Steps: atStep}
}

// fallback attempts to prove each workset marker independently. It
// never probes an already-sealed step: every step up to w.lastStep may
// have had its consistent[] literal permanently assumed by the joint
// induction attempt, which would force every individual marker literal
// at that step true by ordinary unit propagation and make the
// per-marker check vacuous. Instead it always encodes a brand-new
// timestep, one past its highest already-assumed depth, that has never
// been passed to assumePermanentConsistent. The per-marker mismatch
// check itself is transient — opened and closed via the adapter's
// Test/Untest scope — so a failed probe for one marker can never taint
// the probe for the next.
func (w *Worker) fallback(atStep int) Result {
	probeStep := w.lastStep + 1
	w.createTimestep(probeStep)

	var proven []*netlist.Cell
	for _, m := range w.Markers {
		mismatch := w.adapter.Not(w.enc.MarkerLit(probeStep, m))
		if !w.adapter.TransientSolve(mismatch) {
			w.log.WithField("cell", m.Name).Info("proved via per-marker fallback")
			m.SetPort("B", m.Port("A"))
			proven = append(proven, m)
		} else {
			w.log.WithField("cell", m.Name).Warn("could not prove via per-marker fallback")
		}
	}

	outcome := Diverged
	switch {
	case len(proven) == len(w.Markers) && len(w.Markers) > 0:
		outcome = AllProven
	case len(proven) > 0:
		outcome = Partial
	}
	return Result{Outcome: outcome, Proven: proven, Steps: atStep}
}
