// Package log provides named service loggers on top of zerolog.
//
// Every logger carries the service name it was created for. In the default
// console format lines look like:
//
//	2025/01/02 15:04:05.000000 INF [search>] assembled page 2 (10 items)
//
// With SetJSON(true) the same events are emitted as JSON objects with a
// "service" field, which is what log shippers expect.
//
// Debug output is off unless enabled globally (SetGlobalDebug) or for a
// single service (EnableDebugFor).
//
// The package name collides with the standard library "log" package; alias
// one of them when both are needed.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Logger is a named logger with printf style helpers.
type Logger struct {
	name string
	zl   atomic.Pointer[zerolog.Logger]
}

// writerHolder keeps the concrete type stored in atomic.Value stable.
type writerHolder struct {
	w io.Writer
}

var (
	globalDebug  atomic.Bool
	jsonOutput   atomic.Bool
	serviceDebug sync.Map // map[string]*atomic.Bool
	loggers      sync.Map // map[string]*Logger
	outputWriter atomic.Value
)

const timeFormat = "2006/01/02 15:04:05.000000"

func init() {
	outputWriter.Store(writerHolder{w: os.Stderr})
}

// ForService returns (and memoizes) the logger for the given service.
func ForService(name string) *Logger {
	if name == "" {
		name = "unknown"
	}
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger)
	}
	logger := &Logger{name: name}
	logger.reset(currentOutput())
	actual, _ := loggers.LoadOrStore(name, logger)
	return actual.(*Logger)
}

func currentOutput() io.Writer {
	return outputWriter.Load().(writerHolder).w
}

func (l *Logger) reset(w io.Writer) {
	var zl zerolog.Logger
	if jsonOutput.Load() {
		zl = zerolog.New(w).With().Timestamp().Str("service", l.name).Logger()
	} else {
		name := l.name
		cw := zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: timeFormat,
			FormatMessage: func(i interface{}) string {
				return "[" + name + ">] " + fmt.Sprint(i)
			},
		}
		zl = zerolog.New(cw).With().Timestamp().Logger()
	}
	l.zl.Store(&zl)
}

func resetAll() {
	w := currentOutput()
	loggers.Range(func(_, v any) bool {
		v.(*Logger).reset(w)
		return true
	})
}

// SetGlobalDebug enables or disables debug logging globally.
func SetGlobalDebug(enabled bool) {
	globalDebug.Store(enabled)
}

// GlobalDebug returns whether global debug logging is enabled.
func GlobalDebug() bool {
	return globalDebug.Load()
}

// EnableDebugFor enables debug logging for a specific service.
func EnableDebugFor(name string) {
	if name == "" {
		return
	}
	val, _ := serviceDebug.LoadOrStore(name, &atomic.Bool{})
	val.(*atomic.Bool).Store(true)
}

// DisableDebugFor disables debug logging for a specific service.
func DisableDebugFor(name string) {
	if name == "" {
		return
	}
	if val, ok := serviceDebug.Load(name); ok {
		val.(*atomic.Bool).Store(false)
	}
}

// DebugEnabledFor reports whether debug is enabled for the service, either
// globally or specifically.
func DebugEnabledFor(name string) bool {
	if globalDebug.Load() {
		return true
	}
	if val, ok := serviceDebug.Load(name); ok {
		return val.(*atomic.Bool).Load()
	}
	return false
}

// SetOutput routes all loggers, existing and future, to w.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	outputWriter.Store(writerHolder{w: w})
	resetAll()
}

// SetJSON switches between console (false) and JSON (true) output.
func SetJSON(enabled bool) {
	jsonOutput.Store(enabled)
	resetAll()
}

// Zerolog exposes the underlying logger for callers that want structured
// fields.
func (l *Logger) Zerolog() *zerolog.Logger {
	return l.zl.Load()
}

// Infof logs an informational message with fmt.Sprintf semantics.
func (l *Logger) Infof(format string, args ...any) {
	l.zl.Load().Info().Msgf(format, args...)
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.zl.Load().Warn().Msgf(format, args...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Load().Error().Msgf(format, args...)
}

// Debugf logs a debug message if debug is enabled for this logger's service.
func (l *Logger) Debugf(format string, args ...any) {
	if !DebugEnabledFor(l.name) {
		return
	}
	l.zl.Load().Debug().Msgf(format, args...)
}
