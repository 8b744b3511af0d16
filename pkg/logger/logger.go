// Package logger holds the process-wide structured logger for the contact
// pipeline service.
package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init configures the global JSON logger. Release builds log at Info so
// per-request debug noise stays out of production output.
func Init() {
	level := slog.LevelDebug
	if os.Getenv("GIN_MODE") == "release" {
		level = slog.LevelInfo
	}
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
