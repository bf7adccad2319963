// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Options selects the level and handler of a logger.
type Options struct {
	Level  string // debug, info, warn or error
	Format string // text or json
	Debug  bool   // forces debug level
}

// New returns a logger writing to w. Every record carries a run_id
// identifying this invocation.
func New(w io.Writer, opt Options) *slog.Logger {
	level := ParseLevel(opt.Level)
	if opt.Debug {
		level = slog.LevelDebug
	}
	ho := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if strings.EqualFold(opt.Format, "json") {
		h = slog.NewJSONHandler(w, ho)
	} else {
		h = slog.NewTextHandler(w, ho)
	}
	return slog.New(h).With(slog.String("run_id", uuid.NewString()))
}

// Init builds a logger with New and installs it as the slog default.
func Init(w io.Writer, opt Options) *slog.Logger {
	l := New(w, opt)
	slog.SetDefault(l)
	return l
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
