package services

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/alhuda/dismissal/internal/db"
	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/events"
	"github.com/alhuda/dismissal/internal/models"
	"github.com/alhuda/dismissal/internal/store"
)

// actionFor maps a requested target status to its automatic action. Targets
// no automatic action reaches can only be set via manual override.
func actionFor(target dismissal.Status) (dismissal.Action, error) {
	switch target {
	case dismissal.StatusInQueue:
		return dismissal.Admit(), nil
	case dismissal.StatusReleased:
		return dismissal.Release(), nil
	case dismissal.StatusCollected:
		return dismissal.Collect(), nil
	case dismissal.StatusUnknown:
		return dismissal.QueueClosed(), nil
	default:
		return dismissal.Action{}, fmt.Errorf("%w: no automatic action reaches %s",
			dismissal.ErrInvalidTransition, target)
	}
}

// UpdateStudentStatus applies one transition to a student's record in the
// open queue. Manual method bypasses the edge table; everything else goes
// through it and may fail with ErrInvalidTransition.
func UpdateStudentStatus(studentID uint, target dismissal.Status, method dismissal.Method, actor string) (*models.DismissalRecord, error) {
	open, err := store.GetOpenQueue(db.Conn())
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenQueue
	}

	var rec *models.DismissalRecord
	err = db.Conn().Transaction(func(tx *gorm.DB) error {
		rec, err = store.GetRecord(tx, open.ID, studentID)
		if err != nil {
			return err
		}

		action := dismissal.ManualOverride(target)
		if method != dismissal.MethodManual {
			if action, err = actionFor(target); err != nil {
				return err
			}
		}
		from := rec.Status
		next, err := dismissal.Apply(from, action)
		if err != nil {
			return err
		}
		if err := store.SaveStatus(tx, rec, next, store.Meta{
			ChangedAt: time.Now(),
			ChangedBy: actor,
			Method:    method,
		}); err != nil {
			return err
		}
		slog.Info("status transition", "component", "status",
			"queue", open.ID, "student", studentID,
			"from", from, "to", next, "method", method, "actor", actor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	events.Emit(*rec)
	return rec, nil
}

// BulkGradeStatus moves every record of a grade in the open queue to the
// target status. Always the manual-override path: grade-wide changes exist
// exactly to record real-world exceptions the happy path cannot express.
func BulkGradeStatus(grade string, target dismissal.Status, actor string) (int64, error) {
	if _, err := dismissal.Apply(dismissal.StatusStandby, dismissal.ManualOverride(target)); err != nil {
		return 0, err
	}
	open, err := store.GetOpenQueue(db.Conn())
	if err != nil {
		return 0, err
	}
	if open == nil {
		return 0, ErrNoOpenQueue
	}

	var n int64
	var moved []models.DismissalRecord
	err = db.Conn().Transaction(func(tx *gorm.DB) error {
		n, err = store.BulkUpdateStatus(tx, open.ID, store.RecordFilter{Grade: grade}, target, store.Meta{
			ChangedAt: time.Now(),
			ChangedBy: actor,
			Method:    dismissal.MethodBulkGrade,
		})
		if err != nil {
			return err
		}
		moved, err = store.ListRecords(tx, open.ID, store.RecordFilter{Grade: grade})
		return err
	})
	if err != nil {
		return 0, err
	}
	for i := range moved {
		events.Emit(moved[i])
	}
	slog.Info("bulk grade transition", "component", "status",
		"queue", open.ID, "grade", grade, "to", target, "rows", n, "actor", actor)
	return n, nil
}
