// Package speedtest runs the Ookla speedtest CLI as a monitor: it locates or
// installs the tool, runs it, parses the JSON result and reports metrics.
package speedtest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/tacogips/rmmkit/internal/logger"
)

// DefaultDownloadBaseURL is where Ookla publishes the CLI archives.
const DefaultDownloadBaseURL = "https://install.speedtest.net/app/cli"

// DefaultVersion is the pinned CLI version.
const DefaultVersion = "1.2.0"

// baseArgs are always passed to the CLI.
var baseArgs = []string{"--accept-license", "--accept-gdpr", "--format=json"}

// Options configures a Monitor.
type Options struct {
	// InstallDir is the well-known install location checked first.
	InstallDir string
	// Version is the CLI version to install.
	Version string
	// DownloadBaseURL is the archive base URL.
	DownloadBaseURL string
	// RunTimeout bounds one CLI run. Zero means no limit beyond ctx.
	RunTimeout time.Duration
	// DownloadTimeout bounds the archive download. Zero means 60 seconds.
	DownloadTimeout time.Duration

	// Runner executes the CLI. Defaults to ExecRunner.
	Runner Runner
	// Downloader fetches the archive. Defaults to an HTTPDownloader.
	Downloader Downloader
	// LookPath searches the process path. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
	// GOOS and GOARCH select the archive. Default to the running platform.
	GOOS   string
	GOARCH string
}

// Monitor drives the locate, install, run and parse pipeline.
// It is not safe for concurrent use.
type Monitor struct {
	opts      Options
	state     State
	path      string
	installed bool
}

// NewMonitor creates a monitor with defaults filled in.
func NewMonitor(opts Options) *Monitor {
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.DownloadBaseURL == "" {
		opts.DownloadBaseURL = DefaultDownloadBaseURL
	}
	if opts.DownloadTimeout == 0 {
		opts.DownloadTimeout = 60 * time.Second
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.GOARCH == "" {
		opts.GOARCH = runtime.GOARCH
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.Downloader == nil {
		opts.Downloader = &HTTPDownloader{HTTPClient: &http.Client{Timeout: opts.DownloadTimeout}}
	}
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	return &Monitor{opts: opts, state: StateNotChecked}
}

// State returns the current pipeline state.
func (m *Monitor) State() State {
	return m.state
}

// Installed reports whether Install placed the CLI during this run.
func (m *Monitor) Installed() bool {
	return m.installed
}

// Path returns the resolved CLI path, empty until located or installed.
func (m *Monitor) Path() string {
	return m.path
}

func (m *Monitor) transition(to State) {
	logger.Debug("speedtest: %s -> %s", m.state, to)
	m.state = to
}

// installedPath is the executable location inside the install dir.
func (m *Monitor) installedPath() string {
	if m.opts.InstallDir == "" {
		return ""
	}
	return filepath.Join(m.opts.InstallDir, ExecutableName(m.opts.GOOS))
}

// Locate finds the CLI in the install dir, then on the process path.
func (m *Monitor) Locate() (string, error) {
	if p := m.installedPath(); p != "" && isExecutableFile(p) {
		m.path = p
		m.transition(StatePresent)
		return p, nil
	}

	if p, err := m.opts.LookPath(ExecutableName(m.opts.GOOS)); err == nil {
		m.path = p
		m.transition(StatePresent)
		return p, nil
	}

	m.transition(StateAbsent)
	return "", ErrToolNotFound
}

// Install downloads the pinned archive, extracts it into the install dir and
// verifies the executable exists.
func (m *Monitor) Install(ctx context.Context) (string, error) {
	m.transition(StateInstalling)

	p, err := m.install(ctx)
	if err != nil {
		m.transition(StateInstallFailed)
		return "", fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}

	m.path = p
	m.installed = true
	m.transition(StateInstalled)
	return p, nil
}

func (m *Monitor) install(ctx context.Context) (string, error) {
	if m.opts.InstallDir == "" {
		return "", errors.New("no install directory configured")
	}

	name, err := ArchiveName(m.opts.Version, m.opts.GOOS, m.opts.GOARCH)
	if err != nil {
		return "", err
	}
	url := strings.TrimRight(m.opts.DownloadBaseURL, "/") + "/" + name

	if m.opts.DownloadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.opts.DownloadTimeout)
		defer cancel()
	}

	logger.Info("downloading speedtest CLI %s", url)
	archive, err := downloadArchive(ctx, m.opts.Downloader, url)
	if err != nil {
		return "", err
	}
	defer os.Remove(archive)

	if err := extractArchive(archive, m.opts.InstallDir); err != nil {
		return "", err
	}

	p := m.installedPath()
	if !isExecutableFile(p) {
		return "", fmt.Errorf("executable not found after extraction: %s", p)
	}
	if m.opts.GOOS != "windows" {
		if err := os.Chmod(p, 0755); err != nil {
			return "", fmt.Errorf("failed to mark executable: %w", err)
		}
	}
	return p, nil
}

// EnsureInstalled locates the CLI and installs it when absent.
func (m *Monitor) EnsureInstalled(ctx context.Context) (string, error) {
	if p, err := m.Locate(); err == nil {
		logger.Debug("speedtest CLI found at %s", p)
		return p, nil
	}
	logger.Info("speedtest CLI not found, installing version %s", m.opts.Version)
	return m.Install(ctx)
}

// Args returns the CLI arguments for serverID.
func Args(serverID int) []string {
	args := append([]string(nil), baseArgs...)
	if serverID > 0 {
		args = append(args, "--server-id="+strconv.Itoa(serverID))
	}
	return args
}

// Run invokes the located CLI and returns its standard output.
func (m *Monitor) Run(ctx context.Context, serverID int) ([]byte, error) {
	if m.path == "" {
		m.transition(StateFailed)
		return nil, ErrToolNotFound
	}
	m.transition(StateRunning)

	if m.opts.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.opts.RunTimeout)
		defer cancel()
	}

	args := Args(serverID)
	logger.Debug("running %s %s", m.path, strings.Join(args, " "))

	start := time.Now()
	res, err := m.opts.Runner.Run(ctx, m.path, args...)
	logger.Since("speedtest run", start)
	if err != nil {
		m.transition(StateFailed)
		return nil, fmt.Errorf("%w: %v", ErrProcessExecutionFailed, err)
	}
	if res.ExitCode != 0 {
		m.transition(StateFailed)
		msg := stderrSnippet(res.Stderr)
		if msg == "" {
			msg = "no error output"
		}
		return nil, fmt.Errorf("%w: exit code %d: %s", ErrProcessExecutionFailed, res.ExitCode, msg)
	}
	return res.Stdout, nil
}

// Execute runs the whole pipeline: ensure installed, run, parse.
func (m *Monitor) Execute(ctx context.Context, serverID int) (*Result, error) {
	if _, err := m.EnsureInstalled(ctx); err != nil {
		return nil, err
	}

	out, err := m.Run(ctx, serverID)
	if err != nil {
		return nil, err
	}

	res, err := Parse(out)
	if err != nil {
		m.transition(StateFailed)
		return nil, err
	}

	m.transition(StateSucceeded)
	return res, nil
}

func isExecutableFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
