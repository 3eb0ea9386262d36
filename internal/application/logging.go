package application

import (
	"context"
	"log/slog"

	"github.com/example/trainee-timetable/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"service", serviceName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// logOutcome writes the result of a mutating operation.
func logOutcome(ctx context.Context, logger *slog.Logger, err error, failure, success string, attrs ...any) {
	if err != nil {
		level := slog.LevelError
		if kind := ErrorKind(err); kind != "unexpected" {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, failure, "error", err, "error_kind", ErrorKind(err))
		return
	}
	logger.InfoContext(ctx, success, attrs...)
}
