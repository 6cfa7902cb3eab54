package app

import (
	"context"
	"errors"
	"time"

	"github.com/tacogips/rmmkit/internal/config"
	"github.com/tacogips/rmmkit/internal/logger"
	"github.com/tacogips/rmmkit/internal/speedtest"
)

// SpeedtestOptions holds options for the speed test monitor.
type SpeedtestOptions struct {
	// Config is the loaded configuration.
	Config *config.Config
	// ServerID selects a server when positive. Zero lets the CLI choose.
	ServerID int

	// Runner, Downloader and LookPath override the monitor's process,
	// network and path lookups (tests).
	Runner     speedtest.Runner
	Downloader speedtest.Downloader
	LookPath   func(file string) (string, error)
}

// SpeedtestResult holds the outcome of the monitor pipeline.
type SpeedtestResult struct {
	// Result is the parsed measurement.
	Result *speedtest.Result
	// Path is the CLI executable that was run.
	Path string
	// Installed is true when the CLI was installed during this run.
	Installed bool
}

// Speedtest runs the speed test monitor pipeline: locate or install the
// CLI, run it and parse its output.
func Speedtest(ctx context.Context, opts SpeedtestOptions) (*SpeedtestResult, error) {
	logger.DebugSection("[app] Speedtest workflow start")

	if opts.Config == nil {
		return nil, NewValidationError("configuration is required", nil)
	}
	if opts.ServerID < 0 {
		return nil, NewValidationError("server ID cannot be negative", nil)
	}

	st := opts.Config.Speedtest
	logger.DebugValue("[app] InstallDir", st.InstallDir)
	logger.DebugValue("[app] ServerID", opts.ServerID)

	monitor := speedtest.NewMonitor(speedtest.Options{
		InstallDir:      st.InstallDir,
		Version:         st.Version,
		DownloadBaseURL: st.DownloadBaseURL,
		RunTimeout:      time.Duration(st.Timeout) * time.Second,
		DownloadTimeout: time.Duration(st.DownloadTimeout) * time.Second,
		Runner:          opts.Runner,
		Downloader:      opts.Downloader,
		LookPath:        opts.LookPath,
	})

	res, err := monitor.Execute(ctx, opts.ServerID)
	if err != nil {
		return nil, NewSpeedtestError(speedtestMessage(err), err)
	}

	return &SpeedtestResult{
		Result:    res,
		Path:      monitor.Path(),
		Installed: monitor.Installed(),
	}, nil
}

func speedtestMessage(err error) string {
	switch {
	case errors.Is(err, speedtest.ErrToolNotFound):
		return "speedtest CLI not available"
	case errors.Is(err, speedtest.ErrInstallFailed):
		return "could not install speedtest CLI"
	case errors.Is(err, speedtest.ErrProcessExecutionFailed):
		return "speedtest run failed"
	case errors.Is(err, speedtest.ErrOutputParseFailed):
		return "could not read speedtest result"
	default:
		return "speedtest failed"
	}
}
