// errors.go
package hosttools

import (
	"errors"
	"fmt"

	"github.com/openembed/hosttools/pkg/manifest"
)

var (
	// ErrManifestLoad indicates the declarative manifest is missing or
	// malformed. This is the only fatal error class in the engine.
	ErrManifestLoad = manifest.ErrLoad

	// ErrNoManager indicates the platform has no manifest entry. The
	// engine itself reports this as a nil resolver result; the sentinel
	// exists for callers that need an error value to surface.
	ErrNoManager = errors.New("no package manager for this platform")
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
