// Command seed creates the initial admin account.
// Credentials come from SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"eventbooking/config"
	"eventbooking/internal/adapters/auth"
	"eventbooking/internal/domain"
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DBUrl, logger)
	if err != nil {
		logger.Error("database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if _, err := postgres.Migrate(cfg.DBUrl); err != nil {
		logger.Error("migrate", "err", err)
		os.Exit(1)
	}

	admin, err := services.SeedAdmin(ctx, postgres.NewUserRepository(db), auth.NewBcryptHasher(auth.DefaultBcryptCost), cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		logger.Info("admin already exists", "email", cfg.SeedAdminEmail)
	case err != nil:
		logger.Error("seed admin", "err", err)
		os.Exit(1)
	default:
		logger.Info("admin created", "id", admin.ID, "email", admin.Email)
	}
}
