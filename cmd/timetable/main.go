package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/trainee-timetable/internal/application"
	"github.com/example/trainee-timetable/internal/calendar"
	"github.com/example/trainee-timetable/internal/config"
	httptransport "github.com/example/trainee-timetable/internal/http"
	"github.com/example/trainee-timetable/internal/logging"
	"github.com/example/trainee-timetable/internal/metrics"
	"github.com/example/trainee-timetable/internal/persistence/sqlite"
	"github.com/example/trainee-timetable/internal/persistence/sqlite/migration"
)

func main() {
	bootstrap := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		bootstrap.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		bootstrap.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, logger, time.Now)
	if err != nil {
		logger.Error("failed to start timetable", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("timetable API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// app is the assembled process: storage, workspace and the HTTP handler.
type app struct {
	Handler   http.Handler
	Workspace *application.Workspace
	store     *sqlite.SnapshotStore
}

func (a *app) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger, now func() time.Time) (*app, error) {
	holidays := calendar.Bulgaria2026()
	if cfg.HolidaysFile != "" {
		loaded, err := calendar.LoadHolidaysFile(cfg.HolidaysFile)
		if err != nil {
			return nil, fmt.Errorf("load holidays: %w", err)
		}
		holidays = loaded
	}

	store, err := sqlite.Open(ctx, migration.DefaultSQLiteConfig(cfg.SQLitePath), logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	m := metrics.New()
	workspace := application.NewWorkspace(application.WorkspaceOptions{
		Holidays:       holidays,
		MaxWeeklyHours: cfg.MaxWeeklyHours,
		Now:            now,
		Store:          store,
		Metrics:        m,
		Logger:         logger,
		ViewCacheTTL:   cfg.ViewCacheTTL,
	})

	// An unreadable store leaves the timetable empty and saving suspended;
	// the process keeps serving.
	if _, err := workspace.Load(ctx, cfg.AutoPromote); err != nil {
		logger.WarnContext(ctx, "starting with an empty timetable; changes will not be saved until restart",
			"error", err, "sqlite_path", cfg.SQLitePath)
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Trainees: httptransport.NewTraineeHandler(application.NewTraineeServiceWithLogger(workspace, logger), logger),
		Sessions: httptransport.NewSessionHandler(application.NewSessionServiceWithLogger(workspace, logger), logger),
		Bookings: httptransport.NewBookingHandler(application.NewBookingServiceWithLogger(workspace, logger), logger),
		Calendar: httptransport.NewCalendarHandler(application.NewCalendarServiceWithLogger(workspace, logger), logger),
		Transfer: httptransport.NewTransferHandler(application.NewTransferServiceWithLogger(workspace, nil, logger), logger),
		Metrics:  m.Handler(),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.Instrument(m),
		},
	})

	return &app{Handler: router, Workspace: workspace, store: store}, nil
}
