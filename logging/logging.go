// Package logging defines the structured, leveled logging interface used
// by the collector backend and persistent-block manager: block sealed,
// subscriber lagged, block encode failures, and disk I/O failures. The default implementation is backed by the standard library's
// log/slog; callers that already run a structured logger elsewhere can
// implement Logger themselves and pass it into collector.Config.
package logging

import (
	"log/slog"
	"os"
)

// Logger is the narrow structured-logging surface the collector needs.
// Each method takes a message and an even-length list of key/value pairs,
// mirroring slog's convention.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// slogLogger adapts *slog.Logger to Logger.
type slogLogger struct{ l *slog.Logger }

func (s slogLogger) Debug(msg string, kv ...any) { s.l.Debug(msg, kv...) }
func (s slogLogger) Info(msg string, kv ...any)  { s.l.Info(msg, kv...) }
func (s slogLogger) Warn(msg string, kv ...any)  { s.l.Warn(msg, kv...) }
func (s slogLogger) Error(msg string, kv ...any) { s.l.Error(msg, kv...) }

// NewSlogLogger wraps an *slog.Logger as a Logger.
func NewSlogLogger(l *slog.Logger) Logger { return slogLogger{l: l} }

// Default is the package-level logger used when a caller does not supply
// one; it writes leveled text to stderr.
var Default Logger = NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

// noop discards every call; useful in tests that don't want log noise.
type noop struct{}

func (noop) Debug(string, ...any) {}
func (noop) Info(string, ...any)  {}
func (noop) Warn(string, ...any)  {}
func (noop) Error(string, ...any) {}

// Noop returns a Logger that discards everything.
func Noop() Logger { return noop{} }
