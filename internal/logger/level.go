package logger

import (
	"log/slog"
	"strings"
)

// Level is the process-wide log level shared by all handlers.
var Level = &level{lvl: &slog.LevelVar{}}

type level struct {
	lvl *slog.LevelVar
}

// Enabled reports whether records at lvl are emitted.
func (l *level) Enabled(lvl slog.Level) bool {
	return lvl >= l.lvl.Level()
}

// Set sets the minimum emitted level.
func (l *level) Set(lvl slog.Level) {
	l.lvl.Set(lvl)
}

// SetByName sets the level from its name. Unknown names are ignored.
func (l *level) SetByName(name string) {
	switch strings.ToLower(name) {
	case "err", "error":
		l.lvl.Set(slog.LevelError)
	case "warn", "warning":
		l.lvl.Set(slog.LevelWarn)
	case "info":
		l.lvl.Set(slog.LevelInfo)
	case "debug":
		l.lvl.Set(slog.LevelDebug)
	}
}
