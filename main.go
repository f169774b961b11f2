package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fahadhasan-x/AgriZoo/auth"
	"github.com/fahadhasan-x/AgriZoo/catalog"
	"github.com/fahadhasan-x/AgriZoo/config"
	"github.com/fahadhasan-x/AgriZoo/database"
	"github.com/fahadhasan-x/AgriZoo/feed"
	"github.com/fahadhasan-x/AgriZoo/logging"
	"github.com/fahadhasan-x/AgriZoo/mailer"
	"github.com/fahadhasan-x/AgriZoo/search"
	"github.com/fahadhasan-x/AgriZoo/storage"
	"github.com/fahadhasan-x/AgriZoo/users"
	"github.com/fahadhasan-x/AgriZoo/web"
	"github.com/fahadhasan-x/AgriZoo/web/handlers"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.Bool("seed", false, "Seed database with sample data")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.App.Environment)

	// Open the database; the handle is passed into every component below.
	db, err := database.Connect(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migration if requested
	if *migrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	// Seed database if requested
	if *seed {
		if err := database.SeedData(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Wire up the components
	store, err := storage.New(cfg.Storage.UploadDir, cfg.Storage.BaseURL, logger)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	mail := mailer.New(&cfg.Mail)
	authSvc := auth.NewService(db, logger, mail, &cfg.Auth, cfg.App.FrontendURL)
	assembler := feed.NewAssembler(db)
	tree := catalog.NewTree(db)
	cat := catalog.New(db, tree)
	userSvc := users.NewService(db, assembler, store)
	agg := search.NewAggregator(db)

	h := handlers.New(authSvc, userSvc, assembler, tree, cat, agg, store)
	server := web.NewServer(logger, h, authSvc, store)

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on http://localhost:%s", cfg.App.Port)
		if err := server.Start(cfg.App.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for interrupt signal
	<-quit
	logger.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
}

func showHelp() {
	log.Println(`
AgriZoo Server

Usage:
  go run main.go [options]

Options:
  -migrate  Run GORM AutoMigrate on startup
  -seed     Seed database with sample data
  -help     Show this help message

Examples:
  # Start server only
  go run main.go

  # Start server with migration
  go run main.go -migrate

  # Start server with migration and seed
  go run main.go -migrate -seed

For seed-only runs, use:
  go run cmd/seed/main.go`)
}
