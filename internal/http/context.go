package http

import (
	"context"
	"log/slog"

	"github.com/example/trainee-timetable/internal/logging"
)

type contextKey string

const (
	traineeIDContextKey contextKey = "trainee_id"
	sessionIDContextKey contextKey = "session_id"
	bookingIDContextKey contextKey = "booking_id"
)

// ContextWithLogger attaches a request scoped logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext returns the request scoped logger, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

// ContextWithTraineeID injects the trainee identifier resolved from the request path.
func ContextWithTraineeID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traineeIDContextKey, id)
}

// TraineeIDFromContext extracts a trainee identifier previously associated with the context.
func TraineeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(traineeIDContextKey).(string)
	return id, ok
}

// ContextWithSessionID injects the session identifier resolved from the request path.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey, id)
}

// SessionIDFromContext extracts a session identifier previously associated with the context.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDContextKey).(string)
	return id, ok
}

// ContextWithBookingID injects the booking identifier resolved from the request path.
func ContextWithBookingID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, bookingIDContextKey, id)
}

// BookingIDFromContext extracts a booking identifier previously associated with the context.
func BookingIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(bookingIDContextKey).(string)
	return id, ok
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// handlerLogger prefers the request scoped logger over the handler's own.
func handlerLogger(ctx context.Context, fallback *slog.Logger, handlerName, operation string, attrs ...any) *slog.Logger {
	logger := LoggerFromContext(ctx)
	if logger == nil {
		logger = defaultLogger(fallback)
	}
	return logger.With(append([]any{"handler", handlerName, "operation", operation}, attrs...)...)
}
