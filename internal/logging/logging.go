// Package logging wires up the process-wide structured logger. It
// never writes to stdout/stderr because those belong to the
// alternate-screen terminal session for the life of the process;
// output goes to a rotated log file instead, following the same
// lumberjack-backed pattern this corpus's other terminal-UI programs
// use for exactly this reason.
package logging

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvVar is the one environment variable this program honours: it
// sets the structured logger's minimum level.
const EnvVar = "PITA_LOG"

// Setup opens (creating if necessary) a rotated log file at path and
// installs it as the default slog logger, with its level taken from
// PITA_LOG (debug/info/warn/error; defaults to warn).
func Setup(path string) *slog.Logger {
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: levelFromEnv(),
	}))
	slog.SetDefault(logger)
	return logger
}

func levelFromEnv() slog.Level {
	switch os.Getenv(EnvVar) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
