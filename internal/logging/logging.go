// Package logging sets up the structured logger of the booking server.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a logger writing to w. Dev mode logs human-readable text at
// debug level; otherwise JSON at info level.
func New(w io.Writer, devMode bool) *slog.Logger {
	if devMode {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Setup installs New(os.Stdout, devMode) as the default slog logger.
func Setup(devMode bool) {
	slog.SetDefault(New(os.Stdout, devMode))
}
