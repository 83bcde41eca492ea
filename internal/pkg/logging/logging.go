package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the default logger.
type Options struct {
	Level  string // "debug", "info", "warn" or "error" (default "info")
	Format string // "json" or "text" (default "json")
	// File, when set, also writes logs to a size-rotated file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Setup initialises the global slog default logger and returns it.
// Logs always go to stderr; CLI output owns stdout.
func Setup(opts Options) *slog.Logger {
	var w io.Writer = os.Stderr
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 64), // MB
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 14),
			Compress:   true,
		}
		w = io.MultiWriter(os.Stderr, rotating)
	}

	logger := slog.New(NewHandler(w, opts.Level, opts.Format))
	slog.SetDefault(logger)
	return logger
}

// NewHandler builds a slog handler for the given level and format names.
func NewHandler(w io.Writer, level, format string) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.ToLower(format) == "text" {
		return slog.NewTextHandler(w, handlerOpts)
	}
	return slog.NewJSONHandler(w, handlerOpts)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
