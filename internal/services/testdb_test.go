package services

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alhuda/dismissal/internal/db"
	"github.com/alhuda/dismissal/internal/models"
)

// setupDB points the process-wide connection at an isolated temp database.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dir := t.TempDir()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.SetConn(gdb)
	return gdb
}

// seedFamily creates one parent with n students in the given grade, all
// enrolled active and marked present today.
func seedFamily(t *testing.T, gdb *gorm.DB, phone, grade string, n int) (models.Parent, []models.Student) {
	t.Helper()
	parent := models.Parent{Name: "Fatimah Zahra", Phone: phone}
	if err := gdb.Create(&parent).Error; err != nil {
		t.Fatalf("create parent: %v", err)
	}
	day := TodayID()
	students := make([]models.Student, n)
	for i := range students {
		students[i] = models.Student{
			Name:             "Student",
			Grade:            grade,
			ClassBuilding:    "B1",
			EnrollmentStatus: models.EnrollmentActive,
			ParentID:         parent.ID,
			BirthDate:        time.Date(2017, 5, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := gdb.Create(&students[i]).Error; err != nil {
			t.Fatalf("create student: %v", err)
		}
		mark := models.AttendanceMark{StudentID: students[i].ID, Day: day, Present: true}
		if err := gdb.Create(&mark).Error; err != nil {
			t.Fatalf("create attendance: %v", err)
		}
	}
	return parent, students
}
