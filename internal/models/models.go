package models

import (
	"time"

	"github.com/alhuda/dismissal/internal/dismissal"
)

type Parent struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name  string
	Phone string `gorm:"uniqueIndex;not null"` // unique parent identity
	Email string

	Students []Student
}

type Student struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name          string
	BirthDate     time.Time
	Grade         string `gorm:"index"`
	ClassBuilding string

	// "active" or "inactive"; only active students enter a daily queue.
	EnrollmentStatus string `gorm:"index;default:active"`

	ParentID uint
	Parent   Parent
}

const (
	EnrollmentActive   = "active"
	EnrollmentInactive = "inactive"
)

// AttendanceMark records whether a student was present on a school day.
// Day uses the queue's canonical YYYYMMDD form so attendance and queues
// share one notion of "today".
type AttendanceMark struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	StudentID uint   `gorm:"not null;uniqueIndex:idx_attendance_day"`
	Day       string `gorm:"not null;uniqueIndex:idx_attendance_day"`
	Present   bool
}

// Queue is the single daily pickup session. The primary key is the local
// school-day date as YYYYMMDD, which is what keeps two same-day queues from
// ever coexisting.
type Queue struct {
	ID        string `gorm:"primaryKey"`
	Status    string `gorm:"index"` // open | closed
	StartedAt time.Time
	StartedBy string
	ClosedAt  *time.Time
	ClosedBy  string

	LastUpdatedAt time.Time
}

const (
	QueueOpen   = "open"
	QueueClosed = "closed"
)

// DismissalRecord tracks one student's pickup progress within one queue.
// Never deleted on its own; it goes when its queue goes.
type DismissalRecord struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	QueueID   string `gorm:"not null;uniqueIndex:idx_record_queue_student"`
	StudentID uint   `gorm:"not null;uniqueIndex:idx_record_queue_student"`

	Grade         string `gorm:"index"`
	ClassBuilding string

	Status          dismissal.Status `gorm:"index"`
	AdmissionMethod dismissal.Method

	ContactID          *uint
	ContactDisplayName string
	ContactKind        dismissal.ContactKind

	StatusChangedAt time.Time
	StatusChangedBy string
}
