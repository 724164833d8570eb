// pkg/platform/resolver.go
package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/openembed/hosttools/pkg/manifest"
)

// ResolvedManager pairs a manager name with its manifest spec
type ResolvedManager struct {
	Name manifest.ManagerName
	Spec manifest.PackageManagerSpec
}

// Resolver maps the execution environment to the package manager the
// manifest selects for it.
type Resolver struct {
	store *manifest.Store
	probe EnvironmentProbe
}

// NewResolver creates a Resolver. A nil probe defaults to the local
// process environment.
func NewResolver(store *manifest.Store, probe EnvironmentProbe) *Resolver {
	if probe == nil {
		probe = Local{}
	}
	return &Resolver{store: store, probe: probe}
}

// ResolveManagerLocal resolves using the synchronously-known local OS.
// A nil result with a nil error means the platform has no manifest
// entry; callers must treat that as "no manager", not as a failure.
func (r *Resolver) ResolveManagerLocal() (*ResolvedManager, error) {
	return r.resolve(runtime.GOOS)
}

// ResolveManager resolves using the effective execution environment,
// which may differ from the local OS when a remote backend runs the
// commands. Returns (nil, nil) for an unsupported platform.
func (r *Resolver) ResolveManager(ctx context.Context) (*ResolvedManager, error) {
	os, err := r.probe.OS(ctx)
	if err != nil {
		return nil, fmt.Errorf("probing execution environment: %w", err)
	}
	return r.resolve(os)
}

// Arch returns the normalized architecture of the effective environment
func (r *Resolver) Arch(ctx context.Context) (string, error) {
	return r.probe.Arch(ctx)
}

func (r *Resolver) resolve(platformKey string) (*ResolvedManager, error) {
	m, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	name, spec, ok := m.ManagerFor(platformKey)
	if !ok {
		return nil, nil
	}
	return &ResolvedManager{Name: name, Spec: spec}, nil
}
