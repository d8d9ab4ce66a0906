package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

// Init opens the database. A non-empty databaseURL selects Postgres;
// otherwise sqlitePath is opened (the directory is created if needed).
func Init(databaseURL, sqlitePath string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	}

	if sqlitePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(sqlitePath), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Case{},
		&models.Hearing{},
		&models.Courtroom{},
		&models.Law{},
		&models.AuditLog{},
		&models.Notification{},
	); err != nil {
		return err
	}

	// Partial unique indexes backing the one-SCHEDULED-hearing-per-slot
	// invariant. The scheduler's in-transaction checks give the precise
	// error; these make concurrent same-slot bookings impossible to commit.
	// The syntax is shared by Postgres and SQLite.
	for _, stmt := range []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_hearings_courtroom_slot
			ON hearings (courtroom_id, hearing_date, hearing_time)
			WHERE status = 'SCHEDULED'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_hearings_judge_slot
			ON hearings (judge_id, hearing_date, hearing_time)
			WHERE status = 'SCHEDULED'`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create hearing slot index: %w", err)
		}
	}
	return nil
}
