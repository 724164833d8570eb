// pkg/shell/runner.go
package shell

import "context"

// Result holds the outcome of a shell command. Fields are pointers
// because a stream that was not captured (or a process that never
// started) is distinct from an empty one.
type Result struct {
	Stdout   *string
	Stderr   *string
	ExitCode *int
}

// Captured reports whether the command produced a captured stdout stream
func (r Result) Captured() bool {
	return r.Stdout != nil
}

// ExitedZero reports whether the command ran and exited with status 0
func (r Result) ExitedZero() bool {
	return r.ExitCode != nil && *r.ExitCode == 0
}

// Runner executes a shell command and reports its streams and exit code.
// Implementations never return an invocation failure as a Go error;
// callers classify the Result instead.
type Runner interface {
	Run(ctx context.Context, command, dir string, capture bool) Result
}

// TaskRunner executes a long-running command with visible output,
// used for installs outside CI. It reports only overall success.
type TaskRunner interface {
	RunTask(ctx context.Context, title, command, dir string) bool
}
