package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
}

type Options struct {
	Level string
	// File enables a JSON log file rotated by size. Empty disables it.
	File       string
	MaxSizeMB  int
	MaxBackups int
	Console    io.Writer
}

func New(opts ...Options) *Logger {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Console == nil {
		o.Console = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(o.Level)}

	handlers := []slog.Handler{slog.NewTextHandler(o.Console, handlerOpts)}
	if o.File != "" {
		handlers = append(handlers, slog.NewJSONHandler(RotatingFile(o.File, o.MaxSizeMB, o.MaxBackups), handlerOpts))
	}

	return &Logger{Logger: slog.New(slogmulti.Fanout(handlers...))}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return New(Options{Console: io.Discard, Level: "error"})
}

// RotatingFile returns a writer that rotates path once it grows past maxSizeMB.
func RotatingFile(path string, maxSizeMB, maxBackups int) io.Writer {
	if maxSizeMB <= 0 {
		maxSizeMB = 100
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}
}

func (l *Logger) Error(msg string, err error, args ...any) {
	l.Logger.Error(msg, append([]any{slog.Any("error", err)}, args...)...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
