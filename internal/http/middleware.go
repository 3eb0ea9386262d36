package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

// RequestObserver receives the outcome of every request.
type RequestObserver interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := ContextWithLogger(r.Context(), logger)
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			logger.DebugContext(ctx, "request started")
			next.ServeHTTP(rec, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "status", rec.Status(), "duration", time.Since(start))
		})
	}
}

// Instrument reports each request to observer under a route label in which
// record identifiers are replaced by {id}.
func Instrument(observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if observer == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			observer.ObserveHTTPRequest(r.Method, routeLabel(r.URL.Path), rec.Status(), time.Since(start))
		})
	}
}

var collectionRoutes = map[string]bool{
	"trainees": true,
	"sessions": true,
	"bookings": true,
}

var staticRoutes = map[string]bool{
	"/calendar/week":  true,
	"/calendar/month": true,
	"/calendar/slots": true,
	"/holidays":       true,
	"/export":         true,
	"/import":         true,
	"/healthz":        true,
	"/metrics":        true,
}

func routeLabel(path string) string {
	if staticRoutes[path] {
		return path
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || !collectionRoutes[parts[0]] {
		return "other"
	}
	switch {
	case len(parts) == 1:
		return "/" + parts[0]
	case len(parts) == 2:
		return "/" + parts[0] + "/{id}"
	case len(parts) == 3 && parts[0] == "trainees" && parts[2] == "weekly-stats":
		return "/trainees/{id}/weekly-stats"
	}
	return "other"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
