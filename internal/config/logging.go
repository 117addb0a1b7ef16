package config

import (
	"io"
	"log/slog"
	"os"
)

// SetupLogging configures the global slog logger based on args.
// Returns the log file handle (caller must close it) or nil if no file.
func SetupLogging(args Args) (*os.File, error) {
	// Diagnostics go to stderr so the summary on stdout stays clean.
	var output io.Writer = os.Stderr
	var logFile *os.File

	if args.Log != "" {
		f, err := os.OpenFile(args.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		logFile = f
		output = io.MultiWriter(os.Stderr, f)
	}

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(args.LogLevel),
	}
	if opts.Level == slog.LevelDebug {
		opts.AddSource = true
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(output, opts)))

	return logFile, nil
}

// parseLogLevel converts string to slog.Level
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
