// pkg/install/kind.go
package install

import (
	"fmt"

	"github.com/openembed/hosttools/pkg/manifest"
)

// ManagerKind is the closed set of package managers the installer can
// drive. Manifest manager names outside this set fail closed: probing
// still works, installing does not.
type ManagerKind int

const (
	// KindUnknown is a manager the installer has no command template for
	KindUnknown ManagerKind = iota
	// KindHomebrew drives brew
	KindHomebrew
	// KindApt drives apt via sudo
	KindApt
	// KindWinget drives the Windows Package Manager
	KindWinget
)

// KindOf maps a manifest manager name onto the closed kind set
func KindOf(name manifest.ManagerName) ManagerKind {
	switch name {
	case manifest.ManagerHomebrew:
		return KindHomebrew
	case manifest.ManagerApt:
		return KindApt
	case manifest.ManagerWinget:
		return KindWinget
	default:
		return KindUnknown
	}
}

// String returns the manager's command name
func (k ManagerKind) String() string {
	switch k {
	case KindHomebrew:
		return "brew"
	case KindApt:
		return "apt"
	case KindWinget:
		return "winget"
	default:
		return "unknown"
	}
}

// InstallCommand builds the manager-specific install invocation for a
// package identifier. The second return value is false for KindUnknown.
func (k ManagerKind) InstallCommand(packageID string) (string, bool) {
	switch k {
	case KindHomebrew:
		return fmt.Sprintf("brew install %s", packageID), true
	case KindApt:
		return fmt.Sprintf("sudo apt install --no-install-recommends -y %s", packageID), true
	case KindWinget:
		return fmt.Sprintf("winget install --accept-package-agreements --accept-source-agreements %s", packageID), true
	default:
		return "", false
	}
}
