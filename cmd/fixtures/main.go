package main

import (
	"fmt"
	"os"

	"bab-arcade/config"
	"bab-arcade/fixtures"
	authServices "bab-arcade/packages/auth/services"
	"bab-arcade/packages/core/services"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}
	logger := config.NewLogger(settings.LogLevel)
	if envErr != nil {
		logger.Info("No .env file found, using environment variables")
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	db, err := config.ConnectDatabase(settings, logger)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}
	fixtureManager := fixtures.NewFixtures(db, services.NewCatalogService(db), authServices.NewGormProfileStore(db), logger)

	switch command := os.Args[1]; command {
	case "generate":
		if err := fixtureManager.GenerateTestData(); err != nil {
			logger.WithError(err).Fatal("failed to generate fixtures")
		}
		fmt.Println("Fixtures generated successfully!")
	case "clear":
		if err := fixtureManager.ClearAllData(); err != nil {
			logger.WithError(err).Fatal("failed to clear fixtures")
		}
		fmt.Println("All fixture data cleared!")
	case "regenerate":
		if err := fixtureManager.ClearAllData(); err != nil {
			logger.WithError(err).Fatal("failed to clear fixtures")
		}
		if err := fixtureManager.GenerateTestData(); err != nil {
			logger.WithError(err).Fatal("failed to generate fixtures")
		}
		fmt.Println("Fixtures regenerated successfully!")
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate    - Seed the competitor catalog and demo profiles (PIN 1234)")
	fmt.Println("  go run ./cmd/fixtures clear       - Clear all data")
	fmt.Println("  go run ./cmd/fixtures regenerate  - Clear and seed again")
}
