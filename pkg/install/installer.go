// pkg/install/installer.go
package install

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/openembed/hosttools/pkg/manifest"
	"github.com/openembed/hosttools/pkg/pathenv"
	"github.com/openembed/hosttools/pkg/probe"
	"github.com/openembed/hosttools/pkg/shell"
)

// Outcome classifies one package install attempt
type Outcome int

const (
	// OutcomeFailed means the install command did not succeed
	OutcomeFailed Outcome = iota
	// OutcomeInstalled means the install succeeded and the re-probe sees the tool
	OutcomeInstalled
	// OutcomePendingRestart means the install reported success but the
	// re-probe still fails; the tool should appear after a restart
	OutcomePendingRestart
)

// Config configures an Installer
type Config struct {
	Runner shell.Runner
	// Tasks runs long installs with visible output. When nil, installs
	// run through Runner instead (the headless path).
	Tasks     shell.TaskRunner
	Prober    *probe.Prober
	Refresher pathenv.Refresher
	Logger    *log.Logger
}

// Installer executes the mutating commands: manager install, package
// install and their post-install steps. All failures degrade to return
// values; nothing here aborts the process.
type Installer struct {
	runner    shell.Runner
	tasks     shell.TaskRunner
	prober    *probe.Prober
	refresher pathenv.Refresher
	logger    *log.Logger
}

// New creates an Installer. A nil Refresher defaults to the platform
// refresher and a nil Logger discards output.
func New(cfg Config) *Installer {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	refresher := cfg.Refresher
	if refresher == nil {
		refresher = pathenv.New()
	}
	return &Installer{
		runner:    cfg.Runner,
		tasks:     cfg.Tasks,
		prober:    cfg.Prober,
		refresher: refresher,
		logger:    logger,
	}
}

// InstallManager installs the package manager itself. Managers without
// an install command require manual installation; guidance is logged
// and false returned without running anything. On success the
// arch-scoped post-install setup steps run in order; their failures
// are warned but do not flip the result.
func (i *Installer) InstallManager(ctx context.Context, name manifest.ManagerName, spec manifest.PackageManagerSpec, arch string) bool {
	if spec.InstallCommand == "" {
		i.logger.Printf("%s must be installed manually, see %s", name, spec.InstallURL)
		return false
	}

	if !i.runInstall(ctx, fmt.Sprintf("Install %s", name), spec.InstallCommand) {
		i.logger.Printf("installing %s failed", name)
		return false
	}

	for _, step := range spec.PostInstallSetup {
		if !step.AppliesTo(arch) {
			continue
		}
		if step.Notes != "" {
			i.logger.Printf("%s setup: %s", name, step.Notes)
		}
		if !i.runInstall(ctx, fmt.Sprintf("%s post-install setup", name), step.Command) {
			i.logger.Printf("warning: %s post-install setup failed: %s", name, step.Command)
		}
	}

	i.refreshPath()
	return true
}

// InstallPackage installs a single package through the manager's
// command template, runs its post-install step if any (warn-only on
// failure), refreshes PATH and re-probes to distinguish an installed
// tool from one that needs a restart to become visible.
func (i *Installer) InstallPackage(ctx context.Context, managerName manifest.ManagerName, pkg manifest.PackageSpec) Outcome {
	kind := KindOf(managerName)
	command, ok := kind.InstallCommand(pkg.Package)
	if !ok {
		i.logger.Printf("no install template for manager %q, cannot install %s", managerName, pkg.Name)
		return OutcomeFailed
	}

	if !i.runInstall(ctx, fmt.Sprintf("Install %s", pkg.Name), command) {
		i.logger.Printf("installing %s failed", pkg.Name)
		return OutcomeFailed
	}

	if pkg.PostInstallStep != "" {
		if !i.runInstall(ctx, fmt.Sprintf("%s post-install step", pkg.Name), pkg.PostInstallStep) {
			i.logger.Printf("warning: %s post-install step failed: %s", pkg.Name, pkg.PostInstallStep)
		}
	}

	i.refreshPath()

	if status := i.prober.ProbePackage(ctx, pkg); status.Available {
		return OutcomeInstalled
	}
	i.logger.Printf("%s installed but not yet visible, restart required", pkg.Name)
	return OutcomePendingRestart
}

// RefreshPath re-reads the OS environment store into the process PATH.
// A no-op off Windows.
func (i *Installer) RefreshPath() {
	i.refreshPath()
}

func (i *Installer) refreshPath() {
	if err := i.refresher.Refresh(); err != nil {
		i.logger.Printf("warning: refreshing PATH failed: %v", err)
	}
}

func (i *Installer) runInstall(ctx context.Context, title, command string) bool {
	if i.tasks != nil {
		return i.tasks.RunTask(ctx, title, command, "")
	}
	res := i.runner.Run(ctx, command, "", true)
	return res.ExitedZero()
}
