// Package driver implements the top-level pass: iterate over a
// design's selected modules, build each module's workset of unproven
// equivalence markers, run the induction worker, rewrite proven
// markers, and report a summary.
//
// Driving independent modules is embarrassingly parallel — nothing in
// one module's induction run depends on another's — so the driver
// optionally fans modules out across a worker-goroutine pool, the
// same work-distribution shape the induction engine's ancestor tool
// used for its own state-space search, repurposed here one level up
// the call stack.
package driver

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/C-Elegans/yosys/canon"
	"github.com/C-Elegans/yosys/induct"
	"github.com/C-Elegans/yosys/netlist"
	"github.com/C-Elegans/yosys/reachability"
)

// DefaultMaxSteps is the induction depth used when -seq is not given.
const DefaultMaxSteps = 4

// DefaultVerifyWeakSteps bounds the -verify-weak exploration depth.
const DefaultVerifyWeakSteps = 8

// Options configures a Driver run.
type Options struct {
	// MaxSteps bounds the induction depth (the -seq flag).
	MaxSteps int
	// Workers bounds how many modules are driven concurrently. 1
	// means strictly sequential, matching the single-threaded core
	// the induction worker itself assumes.
	Workers int
	// VerifyWeak enables the -verify-weak safety net: after induction,
	// every marker the worker claims to have proven is re-checked by
	// brute-force state-space exploration against the module's
	// pre-mutation ports.
	VerifyWeak bool
	// VerifyWeakSteps bounds the -verify-weak exploration depth; zero
	// uses DefaultVerifyWeakSteps.
	VerifyWeakSteps int
	Log             *logrus.Entry
}

// ModuleReport summarizes one module's induction run.
type ModuleReport struct {
	Module     string
	Result     induct.Result
	Workset    int
	Violations []reachability.Violation
}

// Report summarizes a full driver run across every module it drove.
type Report struct {
	Modules []ModuleReport
}

// TotalProven sums the number of markers proven across every module.
func (r Report) TotalProven() int {
	n := 0
	for _, m := range r.Modules {
		n += len(m.Result.Proven)
	}
	return n
}

// ParseMaxSteps parses the -seq flag's argument. An empty string
// yields DefaultMaxSteps; any other value must parse as a positive
// integer, fatal on anything else.
func ParseMaxSteps(s string) (int, error) {
	if s == "" {
		return DefaultMaxSteps, nil
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errors.Errorf("-seq expects a positive integer, got %q", s)
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, errors.Errorf("-seq expects a positive integer, got %q", s)
	}
	return n, nil
}

// Run drives induction over every module in modules and returns a
// Report summarizing what was proven. Modules are processed in the
// given order when opts.Workers <= 1; otherwise a pool of
// opts.Workers goroutines drains them concurrently, each handling one
// module's Worker.Run to completion before taking the next.
func Run(modules []*netlist.Module, opts Options) Report {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	verifySteps := opts.VerifyWeakSteps
	if verifySteps <= 0 {
		verifySteps = DefaultVerifyWeakSteps
	}

	reports := make([]ModuleReport, len(modules))

	runOne := func(i int) {
		m := modules[i]
		mlog := log.WithFields(logrus.Fields{"module": m.Name})
		markers := unprovenWorkset(m)
		if len(markers) == 0 {
			mlog.Info("no unproven $equiv cells found")
			reports[i] = ModuleReport{Module: m.Name, Workset: 0}
			return
		}
		mlog.WithField("markers", len(markers)).Info("found unproven $equiv cells")

		var preMutation []*netlist.Cell
		if opts.VerifyWeak {
			preMutation = snapshotCells(markers)
		}

		w := induct.New(m, markers, maxSteps, mlog)
		result := w.Run()
		mlog.WithFields(logrus.Fields{
			"outcome": result.Outcome.String(),
			"proven":  len(result.Proven),
			"total":   len(markers),
		}).Info("induction finished for module")

		report := ModuleReport{Module: m.Name, Result: result, Workset: len(markers)}
		if opts.VerifyWeak && len(result.Proven) > 0 {
			proven := make(map[string]bool, len(result.Proven))
			for _, c := range result.Proven {
				proven[c.Name] = true
			}
			var checkCells []*netlist.Cell
			for _, c := range preMutation {
				if proven[c.Name] {
					checkCells = append(checkCells, c)
				}
			}
			r := reachability.Explore(m, verifySteps, workers, checkCells)
			report.Violations = r.Violations
			if len(r.Violations) > 0 {
				mlog.WithField("violations", len(r.Violations)).
					Error("verify-weak found a reachable state contradicting a proven marker")
			} else {
				mlog.WithField("statesExplored", r.StatesExplored).
					Info("verify-weak found no contradiction within the explored bound")
			}
		}
		reports[i] = report
	}

	if workers == 1 || len(modules) <= 1 {
		for i := range modules {
			runOne(i)
		}
	} else {
		work := make(chan int, len(modules))
		for i := range modules {
			work <- i
		}
		close(work)

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range work {
					runOne(i)
				}
			}()
		}
		wg.Wait()
	}

	report := Report{Modules: reports}
	log.WithField("proved", report.TotalProven()).Info("Proved previously unproven equivalences")
	return report
}

// unprovenWorkset returns m's equivalence markers, excluding any whose
// A and B ports are already syntactically equal once wire aliases are
// canonicalized. An already-aliased marker is already proven by
// construction — handing it to the worker would contribute solver work
// and logging for a fact the netlist already states directly.
func unprovenWorkset(m *netlist.Module) []*netlist.Cell {
	c := canon.Build(m)
	var out []*netlist.Cell
	for _, marker := range m.EquivCells() {
		if !canonBitsEqual(c, marker.Port("A"), marker.Port("B")) {
			out = append(out, marker)
		}
	}
	return out
}

func canonBitsEqual(c *canon.Canonicalizer, a, b []netlist.SignalBit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if c.Canon(a[i]) != c.Canon(b[i]) {
			return false
		}
	}
	return true
}

// snapshotCells copies each cell's port map so later mutation of the
// live cells (the induction worker aliasing a proven marker's B port
// onto its A port) cannot affect the snapshot. Used by -verify-weak to
// check markers against their original, pre-proof semantics.
func snapshotCells(cells []*netlist.Cell) []*netlist.Cell {
	out := make([]*netlist.Cell, len(cells))
	for i, c := range cells {
		cp := *c
		cp.Ports = make(map[string][]netlist.SignalBit, len(c.Ports))
		for name, bits := range c.Ports {
			cp.Ports[name] = append([]netlist.SignalBit(nil), bits...)
		}
		out[i] = &cp
	}
	return out
}
