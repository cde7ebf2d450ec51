// Package logging routes editor diagnostics through zerolog.
//
// Menus own the terminal while a session runs, so nothing is written until
// Setup points the log at a file or at a console. Each part of the editor
// logs through a Component logger; editing sessions add the document they
// work on.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	root     = zerolog.Nop()
	sessions atomic.Uint64
)

// Options selects where editor logs go
type Options struct {
	// Level is a zerolog level name. "warning" is accepted for "warn";
	// anything unrecognized means info.
	Level string
	// File receives JSON lines and takes precedence over Console.
	File string
	// Console receives human readable lines.
	Console io.Writer
}

// Setup replaces the destination of every logger handed out afterwards.
// The returned closer releases the log file and is never nil.
func Setup(opts Options) (io.Closer, error) {
	level := ParseLevel(opts.Level)

	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		root = newLogger(f, level)
		return f, nil
	case opts.Console != nil:
		root = newLogger(zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.Kitchen}, level)
	default:
		root = zerolog.Nop()
	}
	return closerFunc(func() error { return nil }), nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel reads a level name case-insensitively
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Component returns a logger tagged with the part of the editor using it.
// Loggers keep the destination that was current when they were made.
func Component(name string) zerolog.Logger {
	return root.With().Str("component", name).Logger()
}

// Session returns the logger of one editing session over document. Every
// session gets its own number so interleaved runs in one log file can be
// told apart.
func Session(document string) zerolog.Logger {
	l := Component("navigator").With().Uint64("session", sessions.Add(1))
	if document != "" {
		l = l.Str("document", document)
	}
	return l.Logger()
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
