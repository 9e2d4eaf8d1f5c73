package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New builds the logger used across the CLI and the merge engine. Output is
// human-readable; --verbose lowers the level to debug.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, for tests and for callers
// that only care about events.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
