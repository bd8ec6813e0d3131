// Package logging builds the zerolog logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Verbose bool
	// File appends JSON lines to the named file when set.
	File string
	// Console allows human-readable output on Stderr. The live view owns the
	// terminal and turns this off.
	Console bool
	Stderr  io.Writer
}

// New returns the logger and a close function that must be called on exit.
func New(opts Options) (zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	noop := func() error { return nil }

	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return zerolog.Nop(), noop, fmt.Errorf("create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
		}
		logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
		return logger, f.Close, nil
	}

	if opts.Verbose && opts.Console {
		out := opts.Stderr
		if out == nil {
			out = os.Stderr
		}
		w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: true}
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), noop, nil
	}

	return zerolog.Nop(), noop, nil
}
