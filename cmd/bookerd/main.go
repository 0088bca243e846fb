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

	"github.com/joho/godotenv"

	"github.com/example/appointment-booker/internal/application"
	"github.com/example/appointment-booker/internal/calendar"
	"github.com/example/appointment-booker/internal/config"
	httptransport "github.com/example/appointment-booker/internal/http"
	"github.com/example/appointment-booker/internal/logging"
	"github.com/example/appointment-booker/internal/persistence"
	"github.com/example/appointment-booker/internal/persistence/sqlite"
)

func main() {
	logger := logging.NewLogger(os.Stdout, slog.LevelInfo)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	repos := persistence.NewStore(store)

	var seed []calendar.Slot
	if cfg.SeedDemo {
		seed = application.DemoSlots()
	}
	ledger, err := application.OpenLedger(ctx, repos, seed, logger)
	if err != nil {
		logger.Error("failed to open slot ledger", "error", err)
		os.Exit(1)
	}

	authService := application.NewAuthService(repos, repos, application.MarkerAdminPolicy(cfg.AdminMarker), logger)
	bookingService := application.NewBookingService(authService, ledger, logger)

	unsubscribe := ledger.Subscribe(func(slots []calendar.Slot) {
		logger.Info("ledger replaced", "slots", len(slots))
	})
	defer unsubscribe()

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:     httptransport.NewAuthHandler(authService, logger),
		Bookings: httptransport.NewBookingHandler(bookingService, logger),
		Admin:    httptransport.NewAdminHandler(bookingService, logger),
		Sessions: authService,
		Logger:   logger,
	})
	handler := httptransport.RequestLogger(logger)(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("booker API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
