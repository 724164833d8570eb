// pkg/manifest/store.go
package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

//go:embed manifest.json
var defaultManifest []byte

// ErrLoad indicates the manifest could not be loaded or is malformed.
// This is fatal: the engine cannot function without its declarative data.
var ErrLoad = errors.New("manifest load failed")

// Store loads the manifest once and caches it for the process lifetime.
// The zero value is not usable; construct with NewStore. The caller's
// composition root owns the Store and passes it down, so tests can use
// a fresh instance instead of sharing module-global state.
type Store struct {
	path string

	once sync.Once
	m    *Manifest
	err  error
}

// NewStore creates a Store. If path is empty the embedded default
// manifest is used; otherwise the file at path replaces it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the cached manifest, parsing it on first call.
// Subsequent calls return the same instance and the same error.
func (s *Store) Load() (*Manifest, error) {
	s.once.Do(func() {
		s.m, s.err = s.parse()
	})
	return s.m, s.err
}

func (s *Store) parse() (*Manifest, error) {
	data := defaultManifest
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, s.path, err)
		}
		data = b
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parsing: %v", ErrLoad, err)
	}

	if err := validate(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return &m, nil
}

func validate(m *Manifest) error {
	if len(m.PackageManagers) == 0 {
		return fmt.Errorf("no package managers defined")
	}
	if len(m.SupportedArchitectures) == 0 {
		return fmt.Errorf("no supported architectures defined")
	}
	for name, spec := range m.PackageManagers {
		if spec.CheckCommand == "" {
			return fmt.Errorf("manager %q has no check_command", name)
		}
	}
	for platform, plat := range m.Platforms {
		if _, ok := m.PackageManagers[plat.Manager]; !ok {
			return fmt.Errorf("platform %q references unknown manager %q", platform, plat.Manager)
		}
	}
	for manager, packages := range m.PlatformPackages {
		if _, ok := m.PackageManagers[manager]; !ok {
			return fmt.Errorf("platform_packages references unknown manager %q", manager)
		}
		for _, p := range packages {
			if p.Name == "" || p.Package == "" || p.CheckCommand == "" {
				return fmt.Errorf("manager %q has an incomplete package entry (name %q)", manager, p.Name)
			}
		}
	}
	return nil
}
