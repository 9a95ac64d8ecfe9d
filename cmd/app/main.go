package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"portfolio-web/internal/auth"
	"portfolio-web/internal/backend"
	"portfolio-web/internal/cache"
	"portfolio-web/internal/calendar"
	"portfolio-web/internal/config"
	albumCreate "portfolio-web/internal/http-server/handlers/albums/create"
	albumDelete "portfolio-web/internal/http-server/handlers/albums/delete"
	albumGet "portfolio-web/internal/http-server/handlers/albums/get"
	albumReorder "portfolio-web/internal/http-server/handlers/albums/reorder"
	albumUpdate "portfolio-web/internal/http-server/handlers/albums/update"
	authLogin "portfolio-web/internal/http-server/handlers/auth/login"
	bookingDelete "portfolio-web/internal/http-server/handlers/bookings/delete"
	bookingGet "portfolio-web/internal/http-server/handlers/bookings/get"
	bookingStatus "portfolio-web/internal/http-server/handlers/bookings/status"
	calendarClear "portfolio-web/internal/http-server/handlers/calendar/clear"
	calendarNavigate "portfolio-web/internal/http-server/handlers/calendar/navigate"
	calendarSelect "portfolio-web/internal/http-server/handlers/calendar/selectslot"
	calendarSubmit "portfolio-web/internal/http-server/handlers/calendar/submit"
	calendarView "portfolio-web/internal/http-server/handlers/calendar/view"
	photoDelete "portfolio-web/internal/http-server/handlers/photos/delete"
	photoGet "portfolio-web/internal/http-server/handlers/photos/get"
	photoUpdate "portfolio-web/internal/http-server/handlers/photos/update"
	svc "portfolio-web/internal/service"
	"portfolio-web/internal/widget"
	slogpretty "portfolio-web/pkg/handlers/slogPretty"
	"portfolio-web/pkg/middleware/mwLogger"
	"portfolio-web/pkg/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting portfolio frontend", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	bookingCache, err := cache.NewRedisCache(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init cache", sl.Err(err))
		os.Exit(1)
	}

	widgets, err := widget.NewStore(cfg.RedisAddr, cfg.Calendar.SessionTTL)
	if err != nil {
		log.Error("Failed to init widget store", sl.Err(err))
		os.Exit(1)
	}

	grid := calendar.Grid{
		StartHour:  cfg.Calendar.StartHour,
		EndHour:    cfg.Calendar.EndHour,
		MinAdvance: time.Duration(cfg.Calendar.MinAdvanceHours) * time.Hour,
	}

	service := svc.NewService(log, widgets, client, bookingCache, grid, cfg.Calendar.ServiceName, cfg.Calendar.CacheTTL)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Booking calendar widget
	router.Get("/calendar", calendarView.New(log, service))
	router.Post("/calendar/navigate", calendarNavigate.New(log, service))
	router.Post("/calendar/select", calendarSelect.New(log, service))
	router.Post("/calendar/clear", calendarClear.New(log, service))
	router.Post("/calendar/submit", calendarSubmit.New(log, service))

	// Public gallery
	router.Get("/albums", albumGet.New(log, client))
	router.Get("/albums/{id}", albumGet.New(log, client))
	router.Get("/photos", photoGet.New(log, client))
	router.Get("/photos/album/{albumID}", photoGet.New(log, client))

	// Auth
	router.Post("/login", authLogin.New(log, client))

	// Admin dashboard (proxied with the caller's token)
	router.Group(func(r chi.Router) {
		r.Use(auth.Require(log))

		r.Post("/albums", albumCreate.New(log, client))
		r.Patch("/albums/{id}", albumUpdate.New(log, client))
		r.Delete("/albums/{id}", albumDelete.New(log, client))
		r.Post("/albums/reorder", albumReorder.New(log, client))

		r.Patch("/photos/{id}", photoUpdate.New(log, client))
		r.Delete("/photos/{id}", photoDelete.New(log, client))

		r.Get("/bookings", bookingGet.New(log, client))
		r.Patch("/bookings/{id}", bookingStatus.New(log, client))
		r.Delete("/bookings/{id}", bookingDelete.New(log, client))
	})

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if err := widgets.Close(); err != nil {
		log.Error("Failed to close widget store", sl.Err(err))
	} else {
		log.Info("Widget store closed")
	}

	if err := bookingCache.Close(); err != nil {
		log.Error("Failed to close cache", sl.Err(err))
	} else {
		log.Info("Cache closed")
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
