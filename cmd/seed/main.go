// Seeds the database with the category forest and demo data, running the
// migration first. Safe to run repeatedly: it skips when data exists.
package main

import (
	"log"

	"github.com/fahadhasan-x/AgriZoo/config"
	"github.com/fahadhasan-x/AgriZoo/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := database.SeedData(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Done")
}
