package core

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"veritime.com/veritime/attendance/model"
)

// The production schema is MySQL-specific (ON UPDATE CURRENT_TIMESTAMP), so
// the in-memory databases are created from an explicit DDL mirror rather than
// AutoMigrate. The unique (username, date) pair must be present: the engine's
// conditional insert relies on it.
var testSchema = []string{
	`CREATE TABLE attendance_records (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		date TEXT NOT NULL,
		work_mode TEXT NOT NULL,
		status TEXT NOT NULL,
		clock_in TEXT NOT NULL,
		clock_out TEXT,
		total_hours TEXT,
		latitude REAL,
		longitude REAL,
		accuracy REAL,
		site_name TEXT,
		is_late_arrival INTEGER NOT NULL DEFAULT 0,
		is_early_arrival INTEGER NOT NULL DEFAULT 0,
		is_flex_time INTEGER NOT NULL DEFAULT 0,
		location_validated INTEGER NOT NULL DEFAULT 0,
		fraud_check_passed INTEGER NOT NULL DEFAULT 0,
		manual_override INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		device_id TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT idx_attendance_user_date UNIQUE (username, date)
	)`,
	`CREATE TABLE suspicious_activities (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		record_id TEXT NOT NULL,
		date TEXT NOT NULL,
		reasons TEXT NOT NULL,
		risk_level TEXT NOT NULL,
		resolved INTEGER NOT NULL DEFAULT 0,
		resolved_by TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE user_stats (
		username TEXT PRIMARY KEY,
		days_present INTEGER NOT NULL DEFAULT 0,
		days_half INTEGER NOT NULL DEFAULT 0,
		late_count INTEGER NOT NULL DEFAULT 0,
		total_hours REAL NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE punch_records (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		date TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		device_id TEXT,
		process_status TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Every pooled connection to :memory: is a separate database; pin the
	// pool to one so the whole test sees the same schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to reach connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	return db
}

// seedRecord inserts an attendance row with an explicit created_at. Raw SQL
// because the model pins created_at to insert time via field permissions.
func seedRecord(t *testing.T, db *gorm.DB, username, date, clockIn string, clockOut *string, createdAt time.Time) string {
	t.Helper()

	id := uuid.NewString()
	err := db.Exec(`INSERT INTO attendance_records
		(id, username, date, work_mode, status, clock_in, clock_out, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, username, date, WorkModeOffice, model.StatusPresent, clockIn, clockOut, createdAt, createdAt).Error
	if err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	return id
}
