package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/sunstate-labs/agentcrm/internal/config"
	"github.com/sunstate-labs/agentcrm/internal/database"
	"github.com/sunstate-labs/agentcrm/internal/services"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Seed the lead source catalog. Safe to re-run: rows are upserted on their
name-derived IDs.

Usage:

seed [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  seed -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.SeedLeadSources(db); err != nil {
		log.Fatalf("Failed to seed lead sources: %v", err)
	}

	log.Println("Lead sources seeded")
}
