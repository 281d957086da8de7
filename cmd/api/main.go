package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/homeledger/homeledger/internal/api"
	"github.com/homeledger/homeledger/internal/api/service"
	"github.com/homeledger/homeledger/internal/budgetwatch"
	"github.com/homeledger/homeledger/internal/config"
	"github.com/homeledger/homeledger/internal/data/mongo"
	"github.com/homeledger/homeledger/internal/data/postgres"
	"github.com/homeledger/homeledger/internal/logger"
	"github.com/homeledger/homeledger/internal/platform/messaging/producers"
	"github.com/homeledger/homeledger/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context; NewPostgresDB runs migrations
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize the ledger event producer when the stream is enabled.
	// Services treat a nil producer as "events off".
	var eventProducer producers.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := producers.NewLedgerEventProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize ledger event producer", "error", err)
			os.Exit(1)
		}
		eventProducer = producer
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(log, postgresDB)
	accountRepo := mongo.NewAccountRepository(log, mongoDB.Database())
	transferRepo := mongo.NewTransferRepository(log, mongoDB.Database())
	categoryRepo := mongo.NewCategoryRepository(log, mongoDB.Database())
	tagRepo := mongo.NewTagRepository(log, mongoDB.Database())
	expenseRepo := mongo.NewExpenseRepository(log, mongoDB.Database())
	budgetRepo := mongo.NewBudgetRepository(log, mongoDB.Database())
	filterRepo := mongo.NewFilterRepository(log, mongoDB.Database())

	// Initialize the budget watcher worker pool
	watcher, err := budgetwatch.NewWatcher(log, cfg.BudgetWatch, expenseRepo, budgetRepo, eventProducer)
	if err != nil {
		log.Error("Failed to initialize budget watcher", "error", err)
		os.Exit(1)
	}

	// Initialize services
	svcs := api.Services{
		Auth:     service.NewAuthService(log, userRepo, cfg.Auth),
		Ledger:   service.NewLedgerService(log, mongoDB, accountRepo, transferRepo, eventProducer),
		Expense:  service.NewExpenseService(log, expenseRepo, categoryRepo, watcher),
		Category: service.NewCategoryService(categoryRepo),
		Tag:      service.NewTagService(tagRepo),
		Budget:   service.NewBudgetService(budgetRepo),
		Filter:   service.NewFilterService(filterRepo),
		Report:   service.NewReportService(log, expenseRepo, categoryRepo, tagRepo),
	}

	// Initialize REST server
	server := api.NewServer(log, cfg, svcs)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Drain pending budget checks before closing their dependencies
	watcher.Close()

	if eventProducer != nil {
		if err := eventProducer.Close(); err != nil {
			log.Error("Error closing ledger event producer", "error", err)
		}
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
