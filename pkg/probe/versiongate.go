// pkg/probe/versiongate.go
package probe

import (
	"fmt"
	"regexp"
	"strconv"
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// Gate is a secondary validator for tools with minimum-version
// requirements. It receives the version-printing output of the tool's
// check command and returns an error when the tool must be treated as
// unavailable.
type Gate interface {
	Check(output string) error
}

// MinimumVersion gates a tool on a major.minor floor
type MinimumVersion struct {
	Tool     string
	MinMajor int
	MinMinor int
}

// Check extracts the first major.minor(.patch) token from output and
// compares it against the floor.
func (g MinimumVersion) Check(output string) error {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return fmt.Errorf("%s: no version found in %q, need >= %d.%d", g.Tool, output, g.MinMajor, g.MinMinor)
	}

	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	detected := m[0]

	if major > g.MinMajor || (major == g.MinMajor && minor >= g.MinMinor) {
		return nil
	}
	return fmt.Errorf("%s %s is below the required %d.%d", g.Tool, detected, g.MinMajor, g.MinMinor)
}

// DefaultGates returns the stock version gates keyed by package name.
// The build pipeline needs a Python interpreter no older than 3.10.
func DefaultGates() map[string]Gate {
	return map[string]Gate{
		"python": MinimumVersion{Tool: "python", MinMajor: 3, MinMinor: 10},
	}
}
