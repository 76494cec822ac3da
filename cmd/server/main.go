package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"catering_manager/internal/config"
	"catering_manager/internal/database"
	"catering_manager/internal/handlers"
	"catering_manager/internal/migrations"
	"catering_manager/internal/redis"
	"catering_manager/internal/repository"
	"catering_manager/internal/services"
	"catering_manager/internal/store"
	"catering_manager/pkg/invoice"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Fatal("invalid report timezone")
	}

	st, closeStore := openStore(cfg, logger)
	defer closeStore()

	ctx := context.Background()

	// Initialize repositories and load the persisted collections
	repos := repository.NewRepositories(st, repository.DefaultKeys(cfg.KeyPrefix))
	state := services.NewState(time.Now)
	if err := state.Load(ctx, repos); err != nil {
		logger.WithError(err).Fatal("failed to load stored collections")
	}

	branding := invoice.Branding{
		BusinessName:   cfg.BusinessName,
		Tagline:        cfg.BusinessTagline,
		Footer:         cfg.InvoiceFooter,
		CurrencySymbol: cfg.CurrencySymbol,
		Location:       loc,
	}

	// Initialize services
	catalogService := services.NewCatalogService(state, repos.Items, repos.Menus, logger)
	menuService := services.NewMenuService(state, repos.Menus, logger)
	orderService := services.NewOrderService(state, repos.Orders, logger)
	reportService := services.NewReportService(state, loc, cfg.CurrencySymbol)
	exportService := services.NewExportService(state, invoice.NewSinks(branding, invoice.DefaultQRGenerator{BusinessName: cfg.BusinessName}), logger)
	sessionService := services.NewSessionService(repos.Session, logger)
	backupService := services.NewBackupService(state, repos, logger)

	if cfg.SeedDemoData {
		if err := migrations.SeedCatalog(ctx, catalogService, menuService, logger); err != nil {
			logger.WithError(err).Warn("failed to seed demo catalog")
		}
	}

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(handlers.Services{
		Catalog: catalogService,
		Menus:   menuService,
		Orders:  orderService,
		Reports: reportService,
		Exports: exportService,
		Session: sessionService,
		Backup:  backupService,
	}, services.NewBusy(cfg.BusyDelay(), logger), cfg.LoginDelay())

	router := handlers.NewRouter(apiHandler, logger)

	// Start server
	logger.WithFields(logrus.Fields{
		"port":         cfg.ServerPort,
		"store_driver": cfg.StoreDriver,
	}).Info("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, cors.Default().Handler(router)); err != nil {
		logger.WithError(err).Fatal("failed to start server")
	}
}

// openStore connects the backend named by STORE_DRIVER.
func openStore(cfg *config.Config, logger *logrus.Logger) (store.Store, func()) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		client, err := redis.Initialize(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to Redis")
		}
		return client, func() { client.Close() }

	case config.DriverPostgres:
		db, err := database.Initialize(cfg.DatabaseURL)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to database")
		}
		return database.NewKVStore(db), func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return store.NewMemory(), func() {}

	default:
		logger.WithField("store_driver", cfg.StoreDriver).Fatal("unknown store driver")
		return nil, nil
	}
}
