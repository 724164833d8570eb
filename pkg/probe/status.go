// pkg/probe/status.go
package probe

// Status classifies one required package on the current machine.
// Values are recomputed on every probe pass and never persisted.
type Status struct {
	Name    string `json:"name"`
	Package string `json:"package"`

	// Available is true when the probe (and version gate, if any) passed
	Available bool `json:"available"`

	// Installing is set while an install attempt for the package is running
	Installing bool `json:"installing,omitempty"`

	// PendingRestart means the most recent install reported success but
	// the immediate re-probe still failed. This is a terminal state
	// distinct from failure: the tool should appear after a restart.
	PendingRestart bool `json:"pendingRestart,omitempty"`

	// Err is empty for "not found by probe"; a non-empty value is a
	// stronger classification failure such as a version-gate rejection.
	Err string `json:"error,omitempty"`
}
