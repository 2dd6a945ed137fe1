package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log is the global logger instance. It falls back to slog's default until Setup runs.
var Log = slog.Default()

// Setup initializes the global logger based on the environment
func Setup(env string) {
	SetupWithWriter(env, os.Stdout)
}

// SetupWithWriter is Setup with an explicit destination
func SetupWithWriter(env string, w io.Writer) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: levelFor(env),
	}

	if env == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func levelFor(env string) slog.Level {
	switch env {
	case "development":
		return slog.LevelDebug
	case "test":
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Info logs an info message
func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}
