// Package directory holds the plain lookups the queue engine consumes:
// parents, their students, and day-level attendance. No transition logic
// lives here.
package directory

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alhuda/dismissal/internal/models"
)

var ErrParentNotFound = errors.New("parent not found")

func ParentByID(gdb *gorm.DB, id uint) (*models.Parent, error) {
	var p models.Parent
	err := gdb.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrParentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func StudentsByParent(gdb *gorm.DB, parentID uint) ([]models.Student, error) {
	var students []models.Student
	if err := gdb.Where("parent_id = ?", parentID).Order("name asc").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// ActivePresentStudents returns the students eligible for the given school
// day: enrollment active and an attendance mark with present = true for that
// day. This is the auto-populate predicate.
func ActivePresentStudents(gdb *gorm.DB, day string) ([]models.Student, error) {
	var students []models.Student
	err := gdb.
		Joins("JOIN attendance_marks ON attendance_marks.student_id = students.id").
		Where("attendance_marks.day = ? AND attendance_marks.present = ?", day, true).
		Where("students.enrollment_status = ?", models.EnrollmentActive).
		Order("students.grade asc, students.id asc").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// MarkAttendance upserts one (student, day) attendance row.
func MarkAttendance(gdb *gorm.DB, studentID uint, day string, present bool) error {
	mark := models.AttendanceMark{StudentID: studentID, Day: day, Present: present}
	return gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"present", "updated_at"}),
	}).Create(&mark).Error
}
