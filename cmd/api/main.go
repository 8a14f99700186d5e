// Package main is the entry point for the EcoDrive API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/ecodrive/internal/config"
	"github.com/pkordes/ecodrive/internal/handler"
	"github.com/pkordes/ecodrive/internal/middleware"
	"github.com/pkordes/ecodrive/internal/service"
	"github.com/pkordes/ecodrive/internal/store"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Storage ----------------------------------------------------------
	medium, closeMedium, err := openMedium(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer closeMedium()

	drivers, settings := cfg.Seed.Domain()
	st := store.New(medium, store.Defaults{Drivers: drivers, Settings: settings}, logger)

	// --- Location lookups -------------------------------------------------
	locator, closeLocator := newLocator(ctx, cfg, logger)
	defer closeLocator()

	// --- Services ---------------------------------------------------------
	// The session loads all three documents once; every later read is served
	// from memory and every change is written through.
	session := service.OpenSession(ctx, st)
	srv := handler.NewServer(
		service.NewDriverService(session),
		service.NewSettingsService(session),
		service.NewTripService(session, locator, logger),
		service.NewDashboardService(session, cfg.TimelineLength, time.UTC),
		service.NewExportService(session),
		logger,
	)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for a distance lookup that runs up to the
	// configured lookup timeout.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.LookupTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting",
			"addr", httpSrv.Addr,
			"storage", cfg.StorageBackend,
			"locator", cfg.Locator,
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
