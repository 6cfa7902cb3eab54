// Package logger configures process-wide structured logging.
//
// Records go to stderr with a timestamp and a level tag. Terminals get the
// colored tint handler; pipes and files get slog's text handler.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// timeFormat is the timestamp layout used by both handlers.
const timeFormat = "15:04:05.000"

var (
	mu      sync.RWMutex
	current = slog.New(newTextHandler(os.Stderr))
)

// Options configures Setup.
type Options struct {
	// Debug lowers the level to debug.
	Debug bool
	// NoColor disables colored output even on a terminal.
	NoColor bool
	// Writer is the log destination. Defaults to os.Stderr.
	Writer io.Writer
}

// Setup installs the process-wide logger.
func Setup(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	if opts.Debug {
		Level.Set(slog.LevelDebug)
	} else {
		Level.Set(slog.LevelInfo)
	}

	var h slog.Handler
	if !opts.NoColor && isTerminal(w) {
		h = newTerminalHandler(w)
	} else {
		h = newTextHandler(w)
	}

	l := slog.New(h)
	mu.Lock()
	current = l
	mu.Unlock()
	slog.SetDefault(l)

	return l
}

// L returns the process-wide logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newTextHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level.lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(a.Key, a.Value.Time().Format(timeFormat))
			}
			return a
		},
	})
}

func newTerminalHandler(w io.Writer) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      Level.lvl,
		TimeFormat: timeFormat,
	})
}

// IsEnabled returns whether debug logging is enabled.
func IsEnabled() bool {
	return Level.Enabled(slog.LevelDebug)
}

// Debug logs a formatted debug message.
func Debug(format string, args ...interface{}) {
	log(slog.LevelDebug, format, args...)
}

// Info logs a formatted informational message.
func Info(format string, args ...interface{}) {
	log(slog.LevelInfo, format, args...)
}

// Warn logs a formatted warning.
func Warn(format string, args ...interface{}) {
	log(slog.LevelWarn, format, args...)
}

// Error logs a formatted error.
func Error(format string, args ...interface{}) {
	log(slog.LevelError, format, args...)
}

func log(lvl slog.Level, format string, args ...interface{}) {
	l := L()
	if !l.Enabled(context.Background(), lvl) {
		return
	}
	l.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

// DebugSection logs a section header for debug output.
func DebugSection(section string) {
	Debug("=== %s ===", section)
}

// DebugValue logs a key=value pair at debug level.
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	L().Debug("value", slog.Any(key, value))
}

// DebugJSON logs structured data as compact JSON at debug level.
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		Debug("failed to marshal %s to JSON: %v", key, err)
		return
	}
	L().Debug(key, slog.String("json", string(data)))
}

// Since logs the elapsed time of an operation at debug level.
// Use as: defer logger.Since("fetch", time.Now()).
func Since(op string, start time.Time) {
	if !IsEnabled() {
		return
	}
	L().Debug("timing", slog.String("op", op), slog.Duration("elapsed", time.Since(start)))
}
