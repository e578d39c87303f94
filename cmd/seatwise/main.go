package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/seatwise/seatwise/internal/adapter/email"
	swhttp "github.com/seatwise/seatwise/internal/adapter/http"
	swnats "github.com/seatwise/seatwise/internal/adapter/nats"
	swotel "github.com/seatwise/seatwise/internal/adapter/otel"
	"github.com/seatwise/seatwise/internal/adapter/postgres"
	"github.com/seatwise/seatwise/internal/adapter/ristretto"
	"github.com/seatwise/seatwise/internal/config"
	"github.com/seatwise/seatwise/internal/logger"
	"github.com/seatwise/seatwise/internal/middleware"
	"github.com/seatwise/seatwise/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(cfg.Logging)
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	// OpenTelemetry
	otelShutdown, err := swotel.Setup(ctx, cfg.Logging.Service, cfg.OTel.Endpoint)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("otel shutdown failed", "error", err)
		}
	}()

	metrics, err := swotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("otel metrics: %w", err)
	}

	// PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	// Run migrations
	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	// NATS
	queue, err := swnats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer func() { _ = queue.Close() }()
	slog.Info("nats connected", "url", cfg.NATS.URL)

	// In-process cache for restaurant records on the booking path
	restaurantCache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer restaurantCache.Close()

	// --- Services ---
	store := postgres.NewStore(pool)
	mailer := email.NewMailer(cfg.SMTP)

	restaurantSvc := service.NewRestaurantService(store, restaurantCache, cfg.Cache.TTL)
	bookingSvc := service.NewBookingService(store, queue, restaurantCache, cfg.Cache.TTL, metrics, cfg.Booking)
	notificationSvc := service.NewNotificationService(store, mailer, cfg.Booking.AppBaseURL)

	// Start NATS subscribers (send confirmation and cancellation emails)
	cancelSubscribers, err := notificationSvc.StartSubscribers(ctx, queue)
	if err != nil {
		return fmt.Errorf("notification subscribers: %w", err)
	}
	defer cancelSubscribers()

	// --- HTTP ---
	handlers := swhttp.NewHandlers(restaurantSvc, bookingSvc)

	r := chi.NewRouter()

	// Middleware
	r.Use(swhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(swotel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(middleware.RequestID)
	r.Use(swhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	// API routes
	swhttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
