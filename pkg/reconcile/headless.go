// pkg/reconcile/headless.go
package reconcile

import (
	"context"

	"github.com/openembed/hosttools/pkg/install"
)

// The headless phases serve CI drivers with no human present to retry:
// each phase is independently callable and collapses into a single
// boolean so a pipeline can gate stages on manager setup, package
// installation and final verification separately.

// EnsureManagerHeadless installs the package manager only when it is
// absent. It returns true only when the manager is confirmed available
// afterwards; false means either an unsupported platform, a manual-only
// manager, a failed install, or an install that needs a restart to
// become visible.
func (r *Reconciler) EnsureManagerHeadless(ctx context.Context) (bool, error) {
	mgr, err := r.resolver.ResolveManager(ctx)
	if err != nil {
		return false, err
	}
	if mgr == nil {
		return false, nil
	}

	if r.prober.ProbeManager(ctx, mgr.Spec) {
		r.logger.Printf("%s already available", mgr.Name)
		return true, nil
	}

	arch, err := r.resolver.Arch(ctx)
	if err != nil {
		return false, err
	}

	if !r.installer.InstallManager(ctx, mgr.Name, mgr.Spec, arch) {
		return false, nil
	}

	// InstallManager already refreshed PATH on Windows; a second probe
	// decides between "usable now" and "needs a restart".
	if r.prober.ProbeManager(ctx, mgr.Spec) {
		return true, nil
	}
	r.logger.Printf("%s installed but not detected, a restart may be required", mgr.Name)
	return false, nil
}

// EnsurePackagesHeadless installs every missing package and returns
// true only when a final re-probe shows every package available. The
// manager must already be available.
func (r *Reconciler) EnsurePackagesHeadless(ctx context.Context) (bool, error) {
	mgr, packages, _, err := r.target(ctx)
	if err != nil || mgr == nil {
		return false, err
	}

	if !r.prober.ProbeManager(ctx, mgr.Spec) {
		r.logger.Printf("%s is not available, cannot install packages", mgr.Name)
		return false, nil
	}

	installed := 0
	for _, pkg := range packages {
		if status := r.prober.ProbePackage(ctx, pkg); status.Available {
			continue
		}
		r.logger.Printf("installing %s", pkg.Name)
		if outcome := r.installer.InstallPackage(ctx, mgr.Name, pkg); outcome != install.OutcomeFailed {
			installed++
		}
	}

	if installed > 0 {
		r.installer.RefreshPath()
	}

	allAvailable := true
	for _, pkg := range packages {
		status := r.prober.ProbePackage(ctx, pkg)
		if !status.Available {
			r.logger.Printf("%s still unavailable", pkg.Name)
			allAvailable = false
		}
	}
	return allAvailable, nil
}

// CheckAllHeadless probes every package, logs each status and returns
// true iff everything is available. Pure verification, no mutation.
func (r *Reconciler) CheckAllHeadless(ctx context.Context) (bool, error) {
	statuses, err := r.CheckAll(ctx)
	if err != nil {
		return false, err
	}
	if statuses == nil {
		return false, nil
	}

	all := true
	for _, status := range statuses {
		switch {
		case status.Available:
			r.logger.Printf("ok %s", status.Name)
		case status.Err != "":
			r.logger.Printf("fail %s: %s", status.Name, status.Err)
			all = false
		default:
			r.logger.Printf("missing %s", status.Name)
			all = false
		}
	}
	return all, nil
}
