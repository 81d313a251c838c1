// cmd/seed/main.go
package main

import (
	"card-bank-api/config"
	"card-bank-api/db"
	"card-bank-api/logger"
	"card-bank-api/seeder"
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}

	database, err := db.Connect(cfg)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := seeder.New(database).Run(); err != nil {
		logger.Log.Fatalf("Seeding failed: %v", err)
	}
}
