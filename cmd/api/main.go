// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/schedule"
	"github.com/your-org/storefront-backend/internal/domain/store"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/interfaces/http"
	"github.com/your-org/storefront-backend/internal/interfaces/http/routes"
	"github.com/your-org/storefront-backend/internal/pkg/notify"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
	"github.com/your-org/storefront-backend/internal/pkg/upload"
	"github.com/your-org/storefront-backend/internal/realtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)
	logger.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	// Connect to database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := db.Health(); err != nil {
		logger.Fatalf("Database health check failed: %v", err)
	}
	if err := redisClient.Health(); err != nil {
		logger.Fatalf("Redis health check failed: %v", err)
	}

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB())
	if err := migration.RunAutoMigrations(); err != nil {
		logger.Fatalf("Database migration failed: %v", err)
	}
	if err := migration.CreateIndexes(); err != nil {
		logger.Warnf("Index creation failed: %v", err)
	}

	gormDB := db.GetDB()

	// Optional integrations. The service degrades gracefully without them.
	var uploader *upload.Uploader
	if cfg.Upload.CloudinaryURL != "" {
		uploader, err = upload.NewUploader(cfg)
		if err != nil {
			logger.Warnf("Image uploads disabled: %v", err)
		}
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Notify.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg)
		if err != nil {
			logger.Warnf("Telegram notifications disabled: %v", err)
		} else {
			notifier = tg
		}
	}

	// Domain services
	broker := realtime.NewBroker(redisClient, logger)
	userService := user.NewService(gormDB, cfg)
	catalogService := catalog.NewService(gormDB, cfg, logger)
	cartService := cart.NewService(gormDB, redisClient.GetClient(), cfg)
	orderService := order.NewService(gormDB, cfg, cartService, broker, userService, notifier, logger)
	scheduleService := schedule.NewService(gormDB, cfg, logger)
	storeService := store.NewService(gormDB, cfg, uploader, logger)
	pdfService := pdf.NewService(cfg)

	services := &routes.Services{
		User:     userService,
		Catalog:  catalogService,
		Cart:     cartService,
		Order:    orderService,
		Schedule: scheduleService,
		Store:    storeService,
		PDF:      pdfService,
		Broker:   broker,
	}

	server := http.NewServer(cfg, gormDB, redisClient.GetClient(), services, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully")

	// Flush catalog writes still sitting in the debounce window.
	catalogService.FlushPendingSaves()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logger.Info("Server shutdown completed")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
