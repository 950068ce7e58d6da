// Package logger provides process-wide logging for studydeck.
//
// Console output goes to stderr and is only produced in verbose mode
// (--verbose). When a log file is configured every Info and above record is
// also written there as JSON, rotated by size.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	MaxFileSizeMB = 10
	MaxBackups    = 5
	MaxAgeDays    = 30
)

var (
	mu      sync.RWMutex
	verbose atomic.Bool
	output  io.Writer = os.Stderr
	rotator *lumberjack.Logger
	base    = build()
)

// SetVerbose enables or disables console logging.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return verbose.Load()
}

// SetOutput sets the console writer. Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build()
}

// SetLogFile starts writing JSON records to path. An empty path stops file logging.
func SetLogFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if rotator != nil {
		_ = base.Sync()
		if err := rotator.Close(); err != nil {
			return fmt.Errorf("close log file: %w", err)
		}
		rotator = nil
	}
	if path != "" {
		rotator = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    MaxFileSizeMB,
			MaxBackups: MaxBackups,
			MaxAge:     MaxAgeDays,
			Compress:   true,
		}
	}
	base = build()
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	return SetLogFile("")
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	logf(zapcore.DebugLevel, format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logf(zapcore.InfoLevel, format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	logf(zapcore.WarnLevel, format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	logf(zapcore.ErrorLevel, format, args...)
}

// Section prints a section header to the console in verbose mode.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose.Load() {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func logf(level zapcore.Level, format string, args ...any) {
	mu.RLock()
	l := base
	mu.RUnlock()

	if !l.Core().Enabled(level) {
		return
	}
	if ce := l.Check(level, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// build assembles the zap logger from the current writers (caller must hold lock).
func build() *zap.Logger {
	consoleCfg := zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "message",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + l.CapitalString() + "]")
		},
	}
	consoleLevel := zap.LevelEnablerFunc(func(zapcore.Level) bool {
		return verbose.Load()
	})
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(output), consoleLevel),
	}

	if rotator != nil {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.TimeKey = "timestamp"
		fileCfg.MessageKey = "message"
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotator), zap.InfoLevel))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(2))
}
