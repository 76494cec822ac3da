package main

import (
	"context"
	"os"
	"time"

	"catering_manager/internal/config"
	"catering_manager/internal/database"
	"catering_manager/internal/migrations"
	"catering_manager/internal/repository"
	"catering_manager/internal/services"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.Info("initializing database")

	// Load configuration
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	if err := migrations.RunMigrations(db, logger); err != nil {
		logger.WithError(err).Fatal("failed to migrate database")
	}

	// Seed the starter catalog into the postgres-backed collections
	ctx := context.Background()
	repos := repository.NewRepositories(database.NewKVStore(db), repository.DefaultKeys(cfg.KeyPrefix))
	state := services.NewState(time.Now)
	if err := state.Load(ctx, repos); err != nil {
		logger.WithError(err).Fatal("failed to load stored collections")
	}

	catalog := services.NewCatalogService(state, repos.Items, repos.Menus, logger)
	menus := services.NewMenuService(state, repos.Menus, logger)
	if err := migrations.SeedCatalog(ctx, catalog, menus, logger); err != nil {
		logger.WithError(err).Fatal("failed to seed catalog")
	}

	logger.Info("database initialization completed")
}
