package speedtest

import "errors"

// Pipeline failure kinds. Every error returned by a Monitor wraps exactly one
// of these; test with errors.Is.
var (
	// ErrToolNotFound means the speedtest CLI is neither in the install
	// directory nor on PATH.
	ErrToolNotFound = errors.New("speedtest CLI not found")
	// ErrInstallFailed means downloading, extracting or verifying the CLI failed.
	ErrInstallFailed = errors.New("speedtest CLI install failed")
	// ErrProcessExecutionFailed means the CLI could not be started or exited
	// with a non-zero status.
	ErrProcessExecutionFailed = errors.New("speedtest execution failed")
	// ErrOutputParseFailed means the CLI output was malformed or incomplete.
	ErrOutputParseFailed = errors.New("speedtest output parse failed")
)
