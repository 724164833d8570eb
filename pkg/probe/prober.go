// pkg/probe/prober.go
package probe

import (
	"context"
	"io"
	"log"

	"github.com/openembed/hosttools/pkg/manifest"
	"github.com/openembed/hosttools/pkg/shell"
)

// Prober classifies packages and managers as present or absent by
// running their read-only check commands. It never mutates any state.
//
// A check succeeds when the command produced a captured stdout stream
// and exited zero. The system this replaces accepted any captured
// stdout regardless of exit status; requiring a zero exit is a
// deliberate, documented tightening of that rule.
type Prober struct {
	runner shell.Runner
	gates  map[string]Gate
	logger *log.Logger
}

// NewProber creates a Prober with the stock version gates. A nil
// logger discards output.
func NewProber(runner shell.Runner, logger *log.Logger) *Prober {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Prober{
		runner: runner,
		gates:  DefaultGates(),
		logger: logger,
	}
}

// SetGate registers or replaces the version gate for a package name
func (p *Prober) SetGate(name string, gate Gate) {
	p.gates[name] = gate
}

// ProbeManager reports whether the package manager responds to its
// check command.
func (p *Prober) ProbeManager(ctx context.Context, spec manifest.PackageManagerSpec) bool {
	res := p.runner.Run(ctx, spec.CheckCommand, "", true)
	return res.Captured() && res.ExitedZero()
}

// ProbePackage classifies a single package. A failed check yields
// Available=false with an empty Err; a version-gate rejection yields
// Available=false with Err naming the detected and required versions.
func (p *Prober) ProbePackage(ctx context.Context, pkg manifest.PackageSpec) Status {
	status := Status{Name: pkg.Name, Package: pkg.Package}

	res := p.runner.Run(ctx, pkg.CheckCommand, "", true)
	if !res.Captured() || !res.ExitedZero() {
		p.logger.Printf("probe %s: not found", pkg.Name)
		return status
	}

	if gate, ok := p.gates[pkg.Name]; ok {
		output := *res.Stdout
		if res.Stderr != nil {
			// some interpreters print their version banner to stderr
			output += *res.Stderr
		}
		if err := gate.Check(output); err != nil {
			p.logger.Printf("probe %s: %v", pkg.Name, err)
			status.Err = err.Error()
			return status
		}
	}

	status.Available = true
	return status
}
