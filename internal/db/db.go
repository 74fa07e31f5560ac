package db

import (
	"log/slog"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alhuda/dismissal/internal/models"
)

var conn *gorm.DB

// Init opens (or creates) the dismissal database. DISMISSAL_DB overrides the
// default path; the DSN parameters matter more than the path — WAL for
// concurrent readers against the single writer, busy_timeout so an admit and
// a bulk update queue up instead of erroring.
func Init() error {
	path := os.Getenv("DISMISSAL_DB")
	if path == "" {
		path = "dismissal.db"
	}
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	var err error
	conn, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(conn); err != nil {
		return err
	}

	slog.Info("database ready", "component", "db", "path", path)
	return nil
}

// Migrate creates the schema plus the composite indexes that GORM doesn't
// auto-create from struct tags. Shared with tests so they migrate exactly
// what production migrates.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.Parent{},
		&models.Student{},
		&models.AttendanceMark{},
		&models.Queue{},
		&models.DismissalRecord{},
	); err != nil {
		return err
	}

	gdb.Exec("CREATE INDEX IF NOT EXISTS idx_record_queue_status ON dismissal_records(queue_id, status)")
	gdb.Exec("CREATE INDEX IF NOT EXISTS idx_record_queue_grade  ON dismissal_records(queue_id, grade)")
	return nil
}

func Conn() *gorm.DB {
	return conn
}

// SetConn swaps the process-wide handle; used by tests that run the full
// stack against a temp database.
func SetConn(gdb *gorm.DB) {
	conn = gdb
}
