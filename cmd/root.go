// Package cmd wires the equiv_induct command surface: a small cobra
// command tree, kept local to this module rather than registered
// against a process-wide init() table, with its flags backed by
// pflag.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/C-Elegans/yosys/driver"
	"github.com/C-Elegans/yosys/netlist"
)

// NewRootCmd builds the equiv_induct command.
func NewRootCmd() *cobra.Command {
	var seq string
	var workers int
	var verbose bool
	var verifyWeak bool

	cmd := &cobra.Command{
		Use:   "equiv_induct [file...]",
		Short: "prove $equiv markers equivalent via k-step temporal induction",
		Long: "equiv_induct reads one or more netlists, runs bounded temporal\n" +
			"induction over each module's unproven equivalence markers, and\n" +
			"rewrites every marker it can prove so its two sides agree.",
		RunE: func(_ *cobra.Command, args []string) error {
			log := logrus.New()
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			entry := logrus.NewEntry(log)

			maxSteps, err := driver.ParseMaxSteps(seq)
			if err != nil {
				return err
			}

			modules, err := loadModules(args)
			if err != nil {
				return err
			}

			report := driver.Run(modules, driver.Options{
				MaxSteps:   maxSteps,
				Workers:    workers,
				VerifyWeak: verifyWeak,
				Log:        entry,
			})
			fmt.Printf("Proved %d previously unproven equivalences\n", report.TotalProven())
			for _, m := range report.Modules {
				for _, v := range m.Violations {
					fmt.Fprintf(os.Stderr, "verify-weak: module %s: %s\n", m.Module, v.String())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&seq, "seq", "", fmt.Sprintf("induction depth bound (default %d)", driver.DefaultMaxSteps))
	cmd.Flags().IntVar(&workers, "workers", 1, "number of modules to drive concurrently")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	cmd.Flags().BoolVar(&verifyWeak, "verify-weak", false,
		"after induction, re-check every proven marker by brute-force state exploration")

	return cmd
}

// loadModules parses every named netlist file into a Module, using
// the file's base name (without extension) as the module name.
func loadModules(paths []string) ([]*netlist.Module, error) {
	modules := make([]*netlist.Module, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		m, err := netlist.ParseModule(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
