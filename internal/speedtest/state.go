package speedtest

// State is a step of the monitor pipeline.
type State int

const (
	// StateNotChecked is the state before the CLI has been looked up.
	StateNotChecked State = iota
	// StatePresent means the CLI was found.
	StatePresent
	// StateAbsent means the CLI was not found.
	StateAbsent
	// StateInstalling means the pinned archive is being installed.
	StateInstalling
	// StateInstalled means the install completed and the CLI is usable.
	StateInstalled
	// StateInstallFailed means the install failed; nothing was run.
	StateInstallFailed
	// StateRunning means the speed test process is running.
	StateRunning
	// StateSucceeded means the run completed and its output parsed.
	StateSucceeded
	// StateFailed means the run or the parse failed.
	StateFailed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateNotChecked:
		return "NotChecked"
	case StatePresent:
		return "Checked(present)"
	case StateAbsent:
		return "Checked(absent)"
	case StateInstalling:
		return "Installing"
	case StateInstalled:
		return "Installed"
	case StateInstallFailed:
		return "InstallFailed"
	case StateRunning:
		return "Running"
	case StateSucceeded:
		return "Completed(success)"
	case StateFailed:
		return "Completed(failure)"
	default:
		return "Unknown"
	}
}
