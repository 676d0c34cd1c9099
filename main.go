// main.go
package main

import (
	"context"
	"log"

	"bookme/cmd"
	"bookme/internal/data/repository"
	"bookme/internal/data/seed"
	"bookme/internal/wire"
	"bookme/pkg/cache"
	"bookme/pkg/database"
	"bookme/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Create schema and the fixed sample set on first run. Failure to
	// initialize the store is the one unrecoverable condition.
	if err := seed.Run(context.Background(), db, repos, config.Seed, logger); err != nil {
		logger.Fatal("Failed to seed store", zap.Error(err))
	}

	// Optional Redis availability cache; degrades to no-op when disabled
	availabilityCache := cache.NewAvailabilityCache(config.Redis, logger)
	defer availabilityCache.Close()

	// Wire all dependencies
	app := wire.Wiring(repos, availabilityCache, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
