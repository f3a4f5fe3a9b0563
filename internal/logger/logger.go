// Package logger provides process-wide logging for the chatvault CLI.
// Info, Warn and Error are always printed; Debug and Section only when
// verbose mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	format            = FormatConsole
	output  io.Writer = os.Stderr
	sink              = zapcore.Lock(zapcore.AddSync(os.Stderr))
	log               = build()
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = build()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	sink = zapcore.Lock(zapcore.AddSync(w))
	log = build()
}

// Rotation limits for log files.
const (
	maxFileSizeMB  = 10
	maxFileBackups = 3
	maxFileAgeDays = 28
)

// SetFile redirects logs to a size-rotated file at path. The returned
// closer releases the file.
func SetFile(path string) io.Closer {
	f := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxFileSizeMB,
		MaxBackups: maxFileBackups,
		MaxAge:     maxFileAgeDays,
	}
	SetOutput(f)
	return f
}

// SetFormat selects the console or JSON encoder.
func SetFormat(f string) error {
	if f != FormatConsole && f != FormatJSON {
		return fmt.Errorf("log format must be %q or %q, got %q", FormatConsole, FormatJSON, f)
	}
	mu.Lock()
	defer mu.Unlock()
	format = f
	log = build()
	return nil
}

// Underlying returns the current zap logger.
func Underlying() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Replace swaps in l until the returned function is called, in the manner of
// zap.ReplaceGlobals.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := log
	log = l
	mu.Unlock()
	return func() {
		mu.Lock()
		log = prev
		mu.Unlock()
	}
}

// Debug logs a message if verbose mode is enabled.
func Debug(msg string, fields ...zap.Field) {
	Underlying().Debug(msg, fields...)
}

// Info logs an informational message.
func Info(msg string, fields ...zap.Field) {
	Underlying().Info(msg, fields...)
}

// Warn logs a warning.
func Warn(msg string, fields ...zap.Field) {
	Underlying().Warn(msg, fields...)
}

// Error logs an error that needs the user's attention.
func Error(msg string, fields ...zap.Field) {
	Underlying().Error(msg, fields...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose && format == FormatConsole {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// build creates a logger from the current settings (caller must hold lock).
func build() *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(newEncoder(format), sink, level)
	return zap.New(core)
}

// newEncoder creates JSON or console encoder.
func newEncoder(f string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if f == FormatJSON {
		return zapcore.NewJSONEncoder(encoderCfg)
	}
	// Console output omits timestamps.
	encoderCfg.TimeKey = ""
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderCfg)
}
