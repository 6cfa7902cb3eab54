package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/tacogips/rmmkit/internal/speedtest"
)

type stubRunner struct {
	res speedtest.ExecResult
	err error
}

func (s stubRunner) Run(ctx context.Context, path string, args ...string) (speedtest.ExecResult, error) {
	return s.res, s.err
}

func installFakeCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, speedtest.ExecutableName(runtime.GOOS))
	if err := os.WriteFile(p, []byte("fake"), 0755); err != nil {
		t.Fatalf("write fake CLI: %v", err)
	}
	return dir
}

func notFound(string) (string, error) { return "", errors.New("not found") }

func TestSpeedtest(t *testing.T) {
	cfg := testConfig("")
	cfg.Speedtest.InstallDir = installFakeCLI(t)

	result, err := Speedtest(context.Background(), SpeedtestOptions{
		Config:   cfg,
		Runner:   stubRunner{res: speedtest.ExecResult{Stdout: []byte(`{"download":{"bandwidth":125000000},"upload":{"bandwidth":62500000}}`)}},
		LookPath: notFound,
	})
	if err != nil {
		t.Fatalf("Speedtest failed: %v", err)
	}
	if result.Result.DownloadMbps() != 1000 {
		t.Errorf("download = %v, want 1000", result.Result.DownloadMbps())
	}
	if result.Result.UploadMbps() != 500 {
		t.Errorf("upload = %v, want 500", result.Result.UploadMbps())
	}
	if result.Installed {
		t.Error("an already present CLI must not be reported as installed")
	}
}

func TestSpeedtest_Failures(t *testing.T) {
	tests := []struct {
		name     string
		runner   stubRunner
		sentinel error
	}{
		{
			name:     "non-zero exit",
			runner:   stubRunner{res: speedtest.ExecResult{ExitCode: 1, Stderr: []byte("Limit reached")}},
			sentinel: speedtest.ErrProcessExecutionFailed,
		},
		{
			name:     "missing upload",
			runner:   stubRunner{res: speedtest.ExecResult{Stdout: []byte(`{"download":{"bandwidth":1}}`)}},
			sentinel: speedtest.ErrOutputParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("")
			cfg.Speedtest.InstallDir = installFakeCLI(t)

			result, err := Speedtest(context.Background(), SpeedtestOptions{
				Config:   cfg,
				Runner:   tt.runner,
				LookPath: notFound,
			})
			if result != nil {
				t.Error("no result may be returned on failure")
			}
			if !IsType(err, SpeedtestFailed) {
				t.Errorf("expected SpeedtestFailed, got %v", err)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v in chain, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestSpeedtest_NegativeServerID(t *testing.T) {
	_, err := Speedtest(context.Background(), SpeedtestOptions{Config: testConfig(""), ServerID: -1})
	if !IsType(err, ValidationFailed) {
		t.Errorf("expected ValidationFailed, got %v", err)
	}
}
