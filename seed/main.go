package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sellerpath/lms_api/seed/seeders"
	"github.com/sellerpath/lms_api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, users, datasets, modules, workflows, scenarios")
		dbPath   = flag.String("db", "", "Database path (overrides DB_DATABASE env var)")
		destroy  = flag.Bool("destroy", false, "Clear seeded data before inserting")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	databasePath := *dbPath
	if databasePath == "" {
		databasePath = os.Getenv("DB_DATABASE")
		if databasePath == "" {
			databasePath = "lms.db"
		}
	}

	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(services.Models()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", databasePath)

	mainSeeder := seeders.NewMainSeeder(db)

	if *destroy {
		log.Println("Clearing seeded data...")
		if err := mainSeeder.DestroyAll(); err != nil {
			log.Fatalf("Failed to clear database: %v", err)
		}
	}

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "users":
		if err := mainSeeder.SeedUsersOnly(); err != nil {
			log.Fatalf("Failed to seed users: %v", err)
		}
	case "datasets":
		if err := mainSeeder.SeedDatasetsOnly(); err != nil {
			log.Fatalf("Failed to seed datasets: %v", err)
		}
	case "modules":
		if err := mainSeeder.SeedModulesOnly(); err != nil {
			log.Fatalf("Failed to seed modules: %v", err)
		}
	case "workflows":
		if err := mainSeeder.SeedWorkflowsOnly(); err != nil {
			log.Fatalf("Failed to seed workflows: %v", err)
		}
	case "scenarios":
		if err := mainSeeder.SeedScenariosOnly(); err != nil {
			log.Fatalf("Failed to seed scenarios: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'users', 'datasets', 'modules', 'workflows' or 'scenarios'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

func showHelp() {
	log.Println(`
Database Seeding Tool for the Seller Training Platform

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, users, datasets, modules, workflows, scenarios
  -db string
        Database path (overrides DB_DATABASE environment variable)
  -destroy
        Clear seeded data before inserting
  -help
        Show this help message

Examples:
  # Seed everything
  go run seed/main.go

  # Reset and reseed
  go run seed/main.go -destroy -type=all

  # Seed only datasets
  go run seed/main.go -type=datasets

Environment Variables:
  DB_DATABASE - Default database path (default: lms.db)
`)
}
