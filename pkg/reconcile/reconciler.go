// pkg/reconcile/reconciler.go

// Package reconcile drives the observed tool state toward "everything
// available" through probe/install/re-probe cycles. Installs within a
// batch are strictly sequential: two package-manager invocations
// racing over the same lock (dpkg lock file, Homebrew cellar, winget
// source lock) is worse than a slow batch.
package reconcile

import (
	"context"
	"io"
	"log"

	"github.com/openembed/hosttools/pkg/install"
	"github.com/openembed/hosttools/pkg/manifest"
	"github.com/openembed/hosttools/pkg/platform"
	"github.com/openembed/hosttools/pkg/probe"
)

// BatchResult is the outcome of one installAllMissing pass, folded
// into per-outcome name lists so callers can report precisely instead
// of interpreting a flat flag.
type BatchResult struct {
	Succeeded      []string
	Failed         []string
	PendingRestart []string
}

// InstalledCount counts install attempts the manager reported as
// successful, including those still waiting on a restart to be visible.
func (b BatchResult) InstalledCount() int {
	return len(b.Succeeded) + len(b.PendingRestart)
}

// HasErrors reports whether any install attempt failed outright
func (b BatchResult) HasErrors() bool {
	return len(b.Failed) > 0
}

// NeedsRestart reports whether any successfully-installed package is
// still invisible to probes in this process.
func (b BatchResult) NeedsRestart() bool {
	return len(b.PendingRestart) > 0
}

// Config configures a Reconciler
type Config struct {
	Store     *manifest.Store
	Resolver  *platform.Resolver
	Prober    *probe.Prober
	Installer *install.Installer
	Logger    *log.Logger
}

// Reconciler orchestrates the prober and installer across the
// manifest's package batch. It holds no state between invocations;
// every call starts from a fresh probe pass.
type Reconciler struct {
	store     *manifest.Store
	resolver  *platform.Resolver
	prober    *probe.Prober
	installer *install.Installer
	logger    *log.Logger
}

// New creates a Reconciler. A nil Logger discards output.
func New(cfg Config) *Reconciler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Reconciler{
		store:     cfg.Store,
		resolver:  cfg.Resolver,
		prober:    cfg.Prober,
		installer: cfg.Installer,
		logger:    logger,
	}
}

// target resolves the manager and arch-filtered package list for the
// effective environment. A nil manager with a nil error means the
// platform is unsupported.
func (r *Reconciler) target(ctx context.Context) (*platform.ResolvedManager, []manifest.PackageSpec, string, error) {
	mgr, err := r.resolver.ResolveManager(ctx)
	if err != nil {
		return nil, nil, "", err
	}
	if mgr == nil {
		r.logger.Printf("no package manager for this platform")
		return nil, nil, "", nil
	}

	m, err := r.store.Load()
	if err != nil {
		return nil, nil, "", err
	}

	arch, err := r.resolver.Arch(ctx)
	if err != nil {
		return nil, nil, "", err
	}
	if !m.SupportsArch(arch) {
		r.logger.Printf("warning: architecture %s is not in the supported set", arch)
	}

	return mgr, m.PackagesFor(mgr.Name, arch), arch, nil
}

// CheckAll probes every required package for the current platform and
// architecture, in manifest order, without mutating anything. An
// unsupported platform yields an empty slice.
func (r *Reconciler) CheckAll(ctx context.Context) ([]probe.Status, error) {
	mgr, packages, _, err := r.target(ctx)
	if err != nil || mgr == nil {
		return nil, err
	}

	statuses := make([]probe.Status, 0, len(packages))
	for _, pkg := range packages {
		statuses = append(statuses, r.prober.ProbePackage(ctx, pkg))
	}
	return statuses, nil
}

// CheckManagerAvailable reports whether the platform's package manager
// responds to its check command. It returns false without probing
// anything when the platform has no manager.
func (r *Reconciler) CheckManagerAvailable(ctx context.Context) (bool, error) {
	mgr, err := r.resolver.ResolveManager(ctx)
	if err != nil {
		return false, err
	}
	if mgr == nil {
		return false, nil
	}
	return r.prober.ProbeManager(ctx, mgr.Spec), nil
}

// InstallAllMissing probes everything, installs the missing subset
// strictly sequentially, then re-probes to settle the final
// classification. Individual failures are accumulated, never fatal; a
// batch with nothing missing returns immediately.
func (r *Reconciler) InstallAllMissing(ctx context.Context) (BatchResult, error) {
	var result BatchResult

	mgr, packages, _, err := r.target(ctx)
	if err != nil || mgr == nil {
		return result, err
	}

	missing := make([]manifest.PackageSpec, 0, len(packages))
	for _, pkg := range packages {
		if status := r.prober.ProbePackage(ctx, pkg); !status.Available {
			missing = append(missing, pkg)
		}
	}
	if len(missing) == 0 {
		return result, nil
	}

	for _, pkg := range missing {
		r.logger.Printf("installing %s", pkg.Name)
		switch r.installer.InstallPackage(ctx, mgr.Name, pkg) {
		case install.OutcomeInstalled:
			result.Succeeded = append(result.Succeeded, pkg.Name)
		case install.OutcomePendingRestart:
			result.PendingRestart = append(result.PendingRestart, pkg.Name)
		default:
			result.Failed = append(result.Failed, pkg.Name)
		}
	}

	// Final pass: a package classified pending-restart right after its
	// install may have become visible once PATH was refreshed.
	if len(result.PendingRestart) > 0 {
		byName := make(map[string]manifest.PackageSpec, len(packages))
		for _, pkg := range packages {
			byName[pkg.Name] = pkg
		}

		stillPending := result.PendingRestart[:0]
		for _, name := range result.PendingRestart {
			if status := r.prober.ProbePackage(ctx, byName[name]); status.Available {
				result.Succeeded = append(result.Succeeded, name)
			} else {
				stillPending = append(stillPending, name)
			}
		}
		result.PendingRestart = stillPending
	}

	return result, nil
}
