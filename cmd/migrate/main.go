package main

import (
	"context"
	"flag"
	"fmt"

	"puzzle-landing-api/internal/config"
	"puzzle-landing-api/internal/database"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	var (
		driver  = flag.String("driver", defaultDriver(), "Database driver: sqlite, postgres")
		dsn     = flag.String("dsn", config.GetEnv("DATABASE_URL", "./data/feedback.db"), "Database DSN or file path")
		action  = flag.String("action", "up", "Migration action: up, down, status, validate")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Setup logger
	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.WithFields(logrus.Fields{
		"driver": *driver,
		"action": *action,
	}).Info("Starting migration tool")

	connectionManager := database.NewConnectionManager(&database.ConnectionConfig{
		Driver: *driver,
		DSN:    *dsn,
		Logger: logger,
	})

	if err := connectionManager.Connect(context.Background()); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer connectionManager.Close()

	migrationManager := connectionManager.GetMigrationManager()

	// Handle different actions
	var err error
	switch *action {
	case "up":
		err = migrationManager.RunMigrations()
	case "down":
		err = migrationManager.RollbackMigration()
	case "status":
		err = showMigrationStatus(migrationManager)
	case "validate":
		if err = migrationManager.ValidateSchema(); err == nil {
			fmt.Println("Schema validation passed successfully")
		}
	default:
		err = fmt.Errorf("unknown action %q, use: up, down, status, validate", *action)
	}

	if err != nil {
		connectionManager.Close()
		logger.WithError(err).WithField("action", *action).Fatal("Migration tool failed")
	}

	logger.Info("Migration tool completed successfully")
}

func showMigrationStatus(mm *database.MigrationManager) error {
	status, err := mm.GetMigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	fmt.Printf("Migration Status:\n")
	fmt.Printf("  Version: %d\n", status.Version)
	fmt.Printf("  Applied: %t\n", status.Applied)
	fmt.Printf("  Dirty: %t\n", status.Dirty)
	fmt.Printf("  Timestamp: %s\n", status.Timestamp.Format("2006-01-02 15:04:05"))

	return nil
}

// defaultDriver follows FEEDBACK_STORE. A Supabase project is Postgres
// underneath, reached through DATABASE_URL.
func defaultDriver() string {
	store := config.GetEnv("FEEDBACK_STORE", config.StoreSQLite)
	if store == config.StoreSupabase {
		return config.StorePostgres
	}
	return store
}
