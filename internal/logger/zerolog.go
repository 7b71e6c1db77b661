// Package logger builds the zerolog loggers used by the analysis packages
// and the command line tool.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to writer at the given level.
func New(writer io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewConsole returns a human readable logger on stdout.
func NewConsole(level zerolog.Level) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stdout}, level)
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to a
// zerolog level, falling back to info.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Verbose gates informational messages behind an explicit verbose flag.
// Warnings are always emitted; Info returns a nil event (a no-op in zerolog)
// when verbose is false.
type Verbose struct {
	Log     zerolog.Logger
	Enabled bool
}

// Info starts an informational event, or nil when not verbose.
func (v Verbose) Info(component string) *zerolog.Event {
	if !v.Enabled {
		return nil
	}
	return v.Log.Info().Str("component", component)
}

// Warn starts a warning event.
func (v Verbose) Warn(component string) *zerolog.Event {
	return v.Log.Warn().Str("component", component)
}
