// Package logging contains the structured logger used throughout the ground station.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// DefaultTimeFormatStr is the format used for the leading timestamp of every console log line.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// GlobalLogLevel is consulted by every logger in addition to its own level. Setting it to debug
// turns on debug output everywhere.
var GlobalLogLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

func newStdoutLogger(name string, level Level) Logger {
	const inUTC = true
	return &impl{name, NewAtomicLevelAt(level), inUTC, []Appender{NewStdoutAppender()}}
}

// NewLogger returns a new logger that outputs Info+ logs to stdout in UTC.
func NewLogger(name string) Logger {
	return newStdoutLogger(name, INFO)
}

// NewDebugLogger returns a new logger that outputs Debug+ logs to stdout in UTC.
func NewDebugLogger(name string) Logger {
	return newStdoutLogger(name, DEBUG)
}

// NewTestLogger returns a new logger that outputs Debug+ logs to the test object in local time.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also keeps every entry for assertions.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	observerCore, observedLogs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	logger := &impl{"", NewAtomicLevelAt(DEBUG), false, []Appender{NewTestAppender(tb), observerCore}}
	return logger, observedLogs
}
