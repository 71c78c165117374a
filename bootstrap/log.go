package bootstrap

import (
	"context"

	"golang.org/x/exp/slog"

	"github.com/vkngwrapper/rendercontext/gfx"
)

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogSink forwards validation messages to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Message(severity gfx.DebugSeverity, category gfx.DebugCategory, text string) {
	loggerOrDefault(s.Logger).Log(context.Background(), severityLevel(severity), text,
		slog.String("source", "validation"),
		slog.String("severity", severity.String()),
		slog.String("category", category.String()))
}

func severityLevel(severity gfx.DebugSeverity) slog.Level {
	switch {
	case severity&gfx.SeverityError != 0:
		return slog.LevelError
	case severity&gfx.SeverityWarning != 0:
		return slog.LevelWarn
	case severity&gfx.SeverityInfo != 0:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
