package database

import (
	"fmt"
	"log"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured relational store. Sqlite serves local
// development and tests, postgres serves deployments.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// GetMigrator returns the schema migrator. InitSchema handles a clean
// database in one step; numbered migrations cover upgrades from here on.
func GetMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	migrator := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID:      "0",
			Migrate: initialSchema,
		},
	})

	migrator.InitSchema(func(txn *gorm.DB) error {
		log.Println("[database] clean database detected, running full schema initialization")
		return initialSchema(txn)
	})

	return migrator
}

func initialSchema(txn *gorm.DB) error {
	dbType := txn.Dialector.Name()
	if dbType == "sqlite" || dbType == "sqlite3" {
		// Sqlite does not enable foreign key constraints by default.
		if err := txn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			log.Printf("[database] error enabling foreign keys for sqlite: %v", err)
		}
	}

	return txn.AutoMigrate(
		&Profile{}, &Checkin{}, &QuizResult{}, &Subscription{}, &ChatSession{}, &ChatMessage{},
	)
}
