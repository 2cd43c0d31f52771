package main

import (
	"fmt"
	"os"
	"strconv"

	"bab-arcade/config"
	"bab-arcade/migrations"

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
	migrator, err := migrations.NewMigrator(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("migrator setup failed")
	}
	migrator.AddMigrations(migrations.All()...)

	switch command := os.Args[1]; command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			if s, err := strconv.Atoi(os.Args[2]); err == nil {
				steps = s
			}
		}
		if err := migrator.Rollback(steps); err != nil {
			logger.WithError(err).Fatal("rollback failed")
		}
	case "status":
		if err := showStatus(migrator); err != nil {
			logger.WithError(err).Fatal("status failed")
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migrate migrate          - Run pending migrations")
	fmt.Println("  go run ./cmd/migrate rollback [steps] - Rollback migrations (default: 1)")
	fmt.Println("  go run ./cmd/migrate status           - Show migration status")
}

func showStatus(migrator *migrations.Migrator) error {
	applied, err := migrator.Status()
	if err != nil {
		return err
	}
	pending, err := migrator.Pending()
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		fmt.Println("No migrations have been run yet.")
	} else {
		fmt.Println("Migration Status:")
		fmt.Println("Batch | Name")
		fmt.Println("------|-----")
		for _, migration := range applied {
			fmt.Printf("%-5d | %s\n", migration.Batch, migration.Name)
		}
	}

	for _, name := range pending {
		fmt.Printf("pending | %s\n", name)
	}
	return nil
}
