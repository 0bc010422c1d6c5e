// Package git reads and writes the Git configuration gitid manages.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGitOperationFailed is wrapped by every GitError.
var ErrGitOperationFailed = errors.New("git operation failed")

// GitError describes a failed git invocation.
type GitError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *GitError) Unwrap() []error {
	return []error{ErrGitOperationFailed, e.Err}
}

// CommandRunner runs git with args in dir and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner is the default CommandRunner, delegating to os/exec.
type ExecRunner struct {
	// Binary is the git executable. Empty means "git" from PATH.
	Binary string
}

// NewExecRunner creates an ExecRunner using git from PATH.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Binary: "git"}
}

// Run implements CommandRunner.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	bin := r.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		gerr := &GitError{Args: args, ExitCode: -1, Stderr: stderr.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			gerr.ExitCode = exitErr.ExitCode()
		}
		return "", gerr
	}
	return stdout.String(), nil
}
