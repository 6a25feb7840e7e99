package main

import (
	"fmt"
	"net/http"
	"os"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/logger"
	"folio/internal/quote"
	"folio/internal/router"
	"folio/internal/valuation"

	_ "folio/internal/docs" // Import swagger docs
)

// @title           Folio API
// @version         1.0
// @description     Folio records portfolio transactions, keeps holdings at weighted-average cost and values them against live quotes.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	provider, err := quote.New(appConfig, &http.Client{Timeout: appConfig.QuoteTimeout})
	if err != nil {
		return fmt.Errorf("failed to create quote provider: %w", err)
	}

	engine := router.New(router.Deps{
		DB:     dbManager.DB(),
		Quotes: provider,
		Valuation: valuation.Options{
			Timeout:     appConfig.QuoteTimeout,
			Concurrency: appConfig.QuoteConcurrency,
		},
	})

	log.Infow("Starting Folio server",
		"port", appConfig.Port,
		"db_driver", dbManager.Driver(),
		"quote_provider", provider.Name())
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	log.Infof("Dashboard available at http://localhost:%s/dashboard", appConfig.Port)
	return engine.Run(":" + appConfig.Port)
}
