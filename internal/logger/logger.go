// Package logger is the diagnostic log behind --verbose. Call sites use
// printf-style helpers; the lines are written by a zap console core and
// nothing is printed until verbose mode is switched on.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// quiet is above every level zap emits.
const quiet = zapcore.FatalLevel + 1

var (
	level = zap.NewAtomicLevelAt(quiet)

	mu    sync.RWMutex
	out   io.Writer = os.Stderr
	sugar           = build(os.Stderr)
)

func bracketLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

func build(w io.Writer) *zap.SugaredLogger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      bracketLevel,
		ConsoleSeparator: " ",
		LineEnding:       zapcore.DefaultLineEnding,
	})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)).Sugar()
}

// SetVerbose turns diagnostic output on or off.
func SetVerbose(v bool) {
	if v {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(quiet)
}

// IsVerbose reports whether diagnostic output is on.
func IsVerbose() bool { return level.Enabled(zapcore.DebugLevel) }

// SetOutput redirects the log. The default is stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	sugar = build(w)
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// L returns the zap logger for structured fields. It writes nothing while
// verbose mode is off.
func L() *zap.Logger { return get().Desugar() }

// Debug logs a diagnostic line.
func Debug(format string, args ...any) { get().Debugf(format, args...) }

// Info logs a progress line.
func Info(format string, args ...any) { get().Infof(format, args...) }

// Warn logs a recoverable problem.
func Warn(format string, args ...any) { get().Warnf(format, args...) }

// Section prints a banner that groups the lines after it.
func Section(name string) {
	if !IsVerbose() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(out, "\n=== %s ===\n", name)
}

// Sync flushes buffered entries.
func Sync() { _ = get().Sync() }
