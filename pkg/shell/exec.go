// pkg/shell/exec.go
package shell

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
)

// ExecRunner runs commands through the platform shell: sh -c on POSIX
// systems, cmd /C on Windows. It imposes no timeout of its own; callers
// that need a bound pass a context with a deadline.
type ExecRunner struct {
	logger *log.Logger
}

// NewExecRunner creates an ExecRunner. A nil logger discards output.
func NewExecRunner(logger *log.Logger) *ExecRunner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ExecRunner{logger: logger}
}

// Run executes command in dir. When capture is true stdout and stderr
// are collected into the Result; otherwise they are discarded and only
// the exit code is reported.
func (r *ExecRunner) Run(ctx context.Context, command, dir string, capture bool) Result {
	cmd := shellCommand(ctx, command)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	if capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	r.logger.Printf("run: %s", command)
	err := cmd.Run()

	var res Result
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			code := ee.ExitCode()
			res.ExitCode = &code
		} else {
			// The process never started (shell missing, bad dir).
			r.logger.Printf("run failed to start: %v", err)
			return res
		}
	} else {
		zero := 0
		res.ExitCode = &zero
	}

	if capture {
		out := stdout.String()
		errOut := stderr.String()
		res.Stdout = &out
		res.Stderr = &errOut
	}
	return res
}

// StreamTaskRunner runs install commands with inherited stdio so the
// user sees progress, logging the task title first.
type StreamTaskRunner struct {
	logger *log.Logger
}

// NewStreamTaskRunner creates a StreamTaskRunner. A nil logger discards
// the title lines but the command output still streams to the terminal.
func NewStreamTaskRunner(logger *log.Logger) *StreamTaskRunner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &StreamTaskRunner{logger: logger}
}

// RunTask executes command in dir with output streaming to the
// process's stdout/stderr, returning true on exit status 0.
func (t *StreamTaskRunner) RunTask(ctx context.Context, title, command, dir string) bool {
	t.logger.Printf("%s: %s", title, command)

	cmd := shellCommand(ctx, command)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		t.logger.Printf("%s failed: %v", title, err)
		return false
	}
	return true
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}
