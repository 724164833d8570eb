// hosttools.go
package hosttools

import (
	"context"
	"io"
	"log"
	"os"
	"strings"

	"github.com/openembed/hosttools/pkg/install"
	"github.com/openembed/hosttools/pkg/manifest"
	"github.com/openembed/hosttools/pkg/pathenv"
	"github.com/openembed/hosttools/pkg/platform"
	"github.com/openembed/hosttools/pkg/probe"
	"github.com/openembed/hosttools/pkg/reconcile"
	"github.com/openembed/hosttools/pkg/shell"
)

// Re-export the types callers handle most
type (
	Manifest           = manifest.Manifest
	ManagerName        = manifest.ManagerName
	PackageSpec        = manifest.PackageSpec
	PackageManagerSpec = manifest.PackageManagerSpec
	PackageStatus      = probe.Status
	BatchResult        = reconcile.BatchResult
	ResolvedManager    = platform.ResolvedManager
)

// Re-export the manager name constants
const (
	ManagerHomebrew = manifest.ManagerHomebrew
	ManagerApt      = manifest.ManagerApt
	ManagerWinget   = manifest.ManagerWinget
)

// Config configures an Engine
type Config struct {
	// ManifestPath overrides the embedded manifest when non-empty
	ManifestPath string

	// Debug enables logging to stderr when no Logger is given
	Debug bool

	// Logger for custom logging
	Logger *log.Logger

	// Runner overrides shell execution, mainly for tests
	Runner shell.Runner

	// Tasks runs installs with visible output; nil means installs run
	// silently through Runner (the headless mode)
	Tasks shell.TaskRunner

	// Environment overrides the effective execution environment, e.g.
	// when commands run on a remote backend
	Environment platform.EnvironmentProbe
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{}
}

// Engine is the host-tool provisioning engine: it owns the manifest
// store, the platform resolver, the prober and the installer, and
// exposes the reconciliation entry points.
type Engine struct {
	store      *manifest.Store
	resolver   *platform.Resolver
	prober     *probe.Prober
	installer  *install.Installer
	reconciler *reconcile.Reconciler
	logger     *log.Logger
}

// New creates an Engine and loads the manifest. A manifest that is
// missing or malformed is fatal; every later failure mode degrades to
// a status value instead.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stderr, "hosttools: ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	runner := cfg.Runner
	if runner == nil {
		runner = shell.NewExecRunner(logger)
	}

	store := manifest.NewStore(cfg.ManifestPath)
	if _, err := store.Load(); err != nil {
		return nil, err
	}

	resolver := platform.NewResolver(store, cfg.Environment)
	prober := probe.NewProber(runner, logger)
	installer := install.New(install.Config{
		Runner:    runner,
		Tasks:     cfg.Tasks,
		Prober:    prober,
		Refresher: pathenv.New(),
		Logger:    logger,
	})
	reconciler := reconcile.New(reconcile.Config{
		Store:     store,
		Resolver:  resolver,
		Prober:    prober,
		Installer: installer,
		Logger:    logger,
	})

	return &Engine{
		store:      store,
		resolver:   resolver,
		prober:     prober,
		installer:  installer,
		reconciler: reconciler,
		logger:     logger,
	}, nil
}

// Manifest returns the loaded manifest
func (e *Engine) Manifest() (*Manifest, error) {
	return e.store.Load()
}

// ResolveManager resolves the package manager for the effective
// execution environment. A nil result means unsupported platform.
func (e *Engine) ResolveManager(ctx context.Context) (*ResolvedManager, error) {
	return e.resolver.ResolveManager(ctx)
}

// CheckAll probes every required package without mutating anything
func (e *Engine) CheckAll(ctx context.Context) ([]PackageStatus, error) {
	return e.reconciler.CheckAll(ctx)
}

// CheckManagerAvailable reports whether the platform's manager responds
func (e *Engine) CheckManagerAvailable(ctx context.Context) (bool, error) {
	return e.reconciler.CheckManagerAvailable(ctx)
}

// InstallManager installs the platform's package manager, returning
// false for manual-only managers and failed installs.
func (e *Engine) InstallManager(ctx context.Context) (bool, error) {
	mgr, err := e.resolver.ResolveManager(ctx)
	if err != nil {
		return false, err
	}
	if mgr == nil {
		return false, nil
	}
	arch, err := e.resolver.Arch(ctx)
	if err != nil {
		return false, err
	}
	return e.installer.InstallManager(ctx, mgr.Name, mgr.Spec, arch), nil
}

// InstallAllMissing installs every missing package sequentially
func (e *Engine) InstallAllMissing(ctx context.Context) (BatchResult, error) {
	return e.reconciler.InstallAllMissing(ctx)
}

// EnsureManagerHeadless is the CI manager phase
func (e *Engine) EnsureManagerHeadless(ctx context.Context) (bool, error) {
	return e.reconciler.EnsureManagerHeadless(ctx)
}

// EnsurePackagesHeadless is the CI package phase
func (e *Engine) EnsurePackagesHeadless(ctx context.Context) (bool, error) {
	return e.reconciler.EnsurePackagesHeadless(ctx)
}

// CheckAllHeadless is the CI verification phase
func (e *Engine) CheckAllHeadless(ctx context.Context) (bool, error) {
	return e.reconciler.CheckAllHeadless(ctx)
}

// IsCI reports whether a CI indicator variable is set, which selects
// the headless behavior.
func IsCI() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("CI")))
	return v != "" && v != "0" && v != "false"
}
