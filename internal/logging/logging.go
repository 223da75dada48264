// Package logging builds the zerolog root logger shared by every component.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Options configures the root logger.
type Options struct {
	Level  string
	Format string // auto, console or json
	Writer io.Writer
}

// New returns a root logger. Format "auto" picks the console writer when the
// destination is a terminal.
func New(opt Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}

	if useConsole(opt.Format, w) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(ParseLevel(opt.Level)).With().Timestamp().Logger()
}

// Named returns a child logger tagged with a component field.
func Named(parent zerolog.Logger, component string) zerolog.Logger {
	if component == "" {
		return parent
	}
	return parent.With().Str("component", component).Logger()
}

func useConsole(format string, w io.Writer) bool {
	switch strings.ToLower(format) {
	case "console":
		return true
	case "json":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
