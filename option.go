package contexlog

import (
	"io"
	"os"

	"go.uber.org/zap/zapcore"
)

// colorMode selects how a new logger decides about ANSI colors.
type colorMode int

const (
	// colorAuto probes the sink: colors are enabled only on a terminal.
	colorAuto colorMode = iota
	// colorOn forces colored output regardless of the sink.
	colorOn
	// colorOff disables colors entirely.
	colorOff
)

// settings collects the adjustable parts of a logger before construction.
type settings struct {
	// level is the threshold; used only when levelSet is true.
	level zapcore.Level
	// levelSet marks an explicit WithLevel, bypassing LOG_LEVEL.
	levelSet bool
	// out is the sink; nil means the shared stderr sink.
	out io.Writer
	// color is the coloring decision mode.
	color colorMode
	// clock is the time source for record timestamps.
	clock zapcore.Clock
}

// Option adjusts how New builds a logger.
type Option func(*settings)

// WithLevel sets the threshold explicitly instead of reading LOG_LEVEL.
func WithLevel(level zapcore.Level) Option {
	return func(s *settings) {
		s.level = level
		s.levelSet = true
	}
}

// WithOutput redirects the console sink, e.g. into a buffer in tests.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// WithColor forces colored output on or off instead of probing the sink for
// a terminal.
func WithColor(enabled bool) Option {
	return func(s *settings) {
		if enabled {
			s.color = colorOn
		} else {
			s.color = colorOff
		}
	}
}

// WithClock substitutes the time source used for timestamps. Tests use it to
// get deterministic lines.
func WithClock(clock zapcore.Clock) Option {
	return func(s *settings) {
		s.clock = clock
	}
}

// colorEnabled resolves the coloring decision against the actual sink.
func (s *settings) colorEnabled(w io.Writer) bool {
	switch s.color {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return isTerminal(w)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
