package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jblaunch/jblaunch/internal/paths"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
	level         slog.LevelVar
)

// Get returns the global logger instance, initializing it once.
// It writes to a rotated log file in the state directory; commands stay
// quiet on stdout unless they have something to print.
func Get() *slog.Logger {
	once.Do(func() {
		defaultLogger = initLogger()
	})
	return defaultLogger
}

// SetLevel adjusts verbosity; accepts debug, info, warn, error.
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// initLogger builds the file-backed logger. If the log file cannot be
// created it falls back to a no-op logger rather than failing the command.
func initLogger() *slog.Logger {
	logPath := paths.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    5, // MB
		MaxBackups: 1,
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: &level})
	return slog.New(handler)
}
