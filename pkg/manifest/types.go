// pkg/manifest/types.go
package manifest

// ManagerName identifies a package manager in the manifest
type ManagerName string

const (
	// ManagerHomebrew is the Homebrew package manager (macOS)
	ManagerHomebrew ManagerName = "homebrew"
	// ManagerApt is the APT package manager (Debian/Ubuntu)
	ManagerApt ManagerName = "apt"
	// ManagerWinget is the Windows Package Manager
	ManagerWinget ManagerName = "winget"
)

// Manifest is the declarative description of supported architectures,
// package managers, per-platform manager selection and per-manager
// package lists. It is read-only after load.
type Manifest struct {
	SupportedArchitectures []string                           `json:"supported_architectures"`
	PackageManagers        map[ManagerName]PackageManagerSpec `json:"package_managers"`
	Platforms              map[string]PlatformSpec            `json:"platforms"`
	PlatformPackages       map[ManagerName][]PackageSpec      `json:"platform_packages"`
}

// PlatformSpec selects the package manager for a platform key
type PlatformSpec struct {
	Manager ManagerName `json:"manager"`
}

// PackageManagerSpec describes how to probe and install a package manager.
// An empty InstallCommand means the manager must be installed manually;
// only InstallURL guidance is offered.
type PackageManagerSpec struct {
	CheckCommand     string      `json:"check_command"`
	InstallCommand   string      `json:"install_command,omitempty"`
	InstallURL       string      `json:"install_url,omitempty"`
	PostInstallSetup []SetupStep `json:"post_install_setup,omitempty"`
}

// SetupStep is an architecture-scoped post-install command for a manager
type SetupStep struct {
	Architectures []string `json:"architectures"`
	Command       string   `json:"command"`
	Notes         string   `json:"notes,omitempty"`
}

// AppliesTo reports whether the step is scoped to the given architecture.
// A step with no architectures applies everywhere.
func (s SetupStep) AppliesTo(arch string) bool {
	if len(s.Architectures) == 0 {
		return true
	}
	for _, a := range s.Architectures {
		if a == arch {
			return true
		}
	}
	return false
}

// PackageSpec describes one required native package
type PackageSpec struct {
	Name            string   `json:"name"`
	Package         string   `json:"package"`
	CheckCommand    string   `json:"check_command"`
	Architectures   []string `json:"architectures,omitempty"`
	PostInstallStep string   `json:"post_install_step,omitempty"`
}

// SupportsArch reports whether the package is required on the given
// architecture. An empty architecture list means all architectures.
func (p PackageSpec) SupportsArch(arch string) bool {
	if len(p.Architectures) == 0 {
		return true
	}
	for _, a := range p.Architectures {
		if a == arch {
			return true
		}
	}
	return false
}

// SupportsArch reports whether the manifest supports the given architecture
func (m *Manifest) SupportsArch(arch string) bool {
	for _, a := range m.SupportedArchitectures {
		if a == arch {
			return true
		}
	}
	return false
}

// ManagerFor returns the package manager spec for a platform key.
// The second return value is false when the platform has no manifest
// entry; callers must treat that as "unsupported platform", not an error.
func (m *Manifest) ManagerFor(platform string) (ManagerName, PackageManagerSpec, bool) {
	plat, ok := m.Platforms[platform]
	if !ok {
		return "", PackageManagerSpec{}, false
	}
	spec, ok := m.PackageManagers[plat.Manager]
	if !ok {
		return "", PackageManagerSpec{}, false
	}
	return plat.Manager, spec, true
}

// PackagesFor returns the package list for a manager, pre-filtered to
// packages whose architecture constraint (if any) includes arch.
func (m *Manifest) PackagesFor(manager ManagerName, arch string) []PackageSpec {
	all := m.PlatformPackages[manager]
	packages := make([]PackageSpec, 0, len(all))
	for _, p := range all {
		if p.SupportsArch(arch) {
			packages = append(packages, p)
		}
	}
	return packages
}
