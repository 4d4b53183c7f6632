// Command api serves the event booking HTTP API.
//
// @title Event Booking API
// @version 1.0
// @description Create, list, update, delete and book events with role-based access.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventbooking/config"
	_ "eventbooking/docs"
	"eventbooking/internal/adapters/auth"
	"eventbooking/internal/adapters/email"
	deliveryhttp "eventbooking/internal/delivery/http"
	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/repository/postgres"
	"eventbooking/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger(os.Getenv("GO_ENV")).Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl, logger)
	if err != nil {
		logger.Error("database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	version, err := postgres.Migrate(cfg.DBUrl)
	if err != nil {
		logger.Error("migrate", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to postgres", "schema_version", version)

	// Repositories and adapters
	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	userRepo := postgres.NewUserRepository(db)
	tokens := auth.NewJWT(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)
	mailer, err := email.NewMailer(cfg.Mailer, logger)
	if err != nil {
		logger.Error("mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	eventSvc := services.NewEventService(eventRepo, bookingRepo, userRepo, emailSvc, logger, cfg.RequestTimeout)
	authSvc := services.NewAuthService(userRepo, hasher, tokens)

	mux := deliveryhttp.NewRouter(
		controllers.NewEventController(logger, eventSvc),
		controllers.NewAuthController(logger, authSvc),
		tokens,
		logger,
	)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      deliveryhttp.NewHandler(mux, logger, middleware.DefaultCORSOptions(cfg.CORSAllowedOrigins)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return
	}
	logger.Info("server stopped")
}
