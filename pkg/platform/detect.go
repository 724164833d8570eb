// pkg/platform/detect.go
package platform

import (
	"context"
	"runtime"
)

// NormalizeArch maps a Go architecture identifier to the uname-style
// name used by the manifest. Unknown values pass through unchanged so
// the manifest's supported-architecture check can reject them.
func NormalizeArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	default:
		return goarch
	}
}

// EnvironmentProbe reports the effective execution environment for
// shell commands. The local process OS and the environment commands
// actually run in can differ, e.g. when a remote execution backend is
// in use, so resolution that feeds command execution goes through a
// probe rather than reading runtime.GOOS directly.
type EnvironmentProbe interface {
	// OS returns the platform key of the effective environment
	OS(ctx context.Context) (string, error)
	// Arch returns the normalized architecture of the effective environment
	Arch(ctx context.Context) (string, error)
}

// Local is an EnvironmentProbe for the current process
type Local struct{}

// OS returns runtime.GOOS
func (Local) OS(context.Context) (string, error) {
	return runtime.GOOS, nil
}

// Arch returns the normalized runtime.GOARCH
func (Local) Arch(context.Context) (string, error) {
	return NormalizeArch(runtime.GOARCH), nil
}
