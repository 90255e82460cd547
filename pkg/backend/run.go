package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ExecutableNotFoundError is returned when a Graphviz binary is not found.
type ExecutableNotFoundError struct {
	Binary string
}

// Error implements the error interface.
func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("failed to execute %q, make sure the Graphviz executables are on your system's PATH", e.Binary)
}

// IsExecutableNotFound reports whether err indicates a missing Graphviz binary.
func IsExecutableNotFound(err error) bool {
	var e *ExecutableNotFoundError
	return errors.As(err, &e)
}

// ExitError is returned when a Graphviz subprocess exits non-zero.
// It carries the captured stderr for diagnostics.
type ExitError struct {
	Cmd      string // the command line that was run
	ExitCode int
	Stderr   string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d [stderr: %q]", e.Cmd, e.ExitCode, e.Stderr)
}

// AsExitError extracts an ExitError from err, if present.
func AsExitError(err error) (*ExitError, bool) {
	var e *ExitError
	ok := errors.As(err, &e)
	return e, ok
}

// runner bundles the inputs of a single subprocess invocation.
type runner struct {
	argv    []string
	dir     string    // working directory ("" = inherit)
	stdin   io.Reader // nil = no stdin
	quiet   bool      // suppress stderr forwarding
	combine bool      // merge stderr into stdout (dot -V prints to stderr)
}

// run executes the command, returning captured stdout. Stderr is captured
// always, forwarded to the process stderr unless quiet, and attached to the
// returned error on non-zero exit.
func (r runner) run(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	cmd.Dir = r.dir
	cmd.Stdin = r.stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if r.combine {
		cmd.Stderr = &stdout
	} else {
		cmd.Stderr = &stderr
	}

	err := cmd.Run()

	if !r.quiet && stderr.Len() > 0 {
		os.Stderr.Write(stderr.Bytes())
	}

	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return nil, &ExecutableNotFoundError{Binary: r.argv[0]}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExitError{
				Cmd:      strings.Join(r.argv, " "),
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("run %s: %w", r.argv[0], err)
	}
	return stdout.Bytes(), nil
}
