// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger used by the
// configuration engine and the configctl command.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
package logger

import (
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a JSON *Logger for the given role label
// (e.g. "config", "configctl").
//
// The logger is configured with:
//   - Info as its minimum level;
//   - a "role" field set to role;
//   - a timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     instead of the default file:line format.
//
// Output is written to os.Stderr so that stdout stays free for exported
// configuration data.
func NewLogger(role string) *Logger {
	return newLogger(role, os.Stderr, zerolog.InfoLevel)
}

// NewConsoleLogger constructs a human-readable *Logger writing to w through
// zerolog.ConsoleWriter. It is used by the command line tool.
func NewConsoleLogger(role string, w io.Writer, level zerolog.Level) *Logger {
	return newLogger(role, zerolog.ConsoleWriter{Out: w, NoColor: true}, level)
}

func newLogger(role string, w io.Writer, level zerolog.Level) *Logger {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(w).
		Level(level).
		With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// Wrap adapts a caller-supplied zerolog.Logger. A nil logger yields Nop().
func Wrap(l *zerolog.Logger) *Logger {
	if l == nil {
		return Nop()
	}
	return &Logger{*l}
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithInstance returns a child *Logger carrying an "instance" field, used to
// tell apart log lines of several engines living in one process.
func (l *Logger) WithInstance(id string) *Logger {
	return &Logger{l.With().Str("instance", id).Logger()}
}
