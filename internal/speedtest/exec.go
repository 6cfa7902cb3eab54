package speedtest

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// stderrLimit bounds the stderr snippet included in errors.
const stderrLimit = 8 << 10 // 8 KiB

// ExecResult is the captured outcome of a finished process.
type ExecResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner starts a process and waits for it to finish.
// A non-zero exit is reported through ExecResult.ExitCode, not as an error;
// the error is reserved for processes that could not be started or were
// killed by the context.
type Runner interface {
	Run(ctx context.Context, path string, args ...string) (ExecResult, error)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, path string, args ...string) (ExecResult, error) {
	cmd := exec.CommandContext(ctx, path, args...) // args are built from fixed flags, no shell involved

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := ExecResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return res, err
	}
	return res, nil
}

// stderrSnippet returns the trimmed tail of stderr for error messages.
func stderrSnippet(b []byte) string {
	if len(b) > stderrLimit {
		b = b[len(b)-stderrLimit:]
	}
	return strings.TrimSpace(string(b))
}
