package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/alhuda/dismissal/internal/db"
	"github.com/alhuda/dismissal/internal/directory"
	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/events"
	"github.com/alhuda/dismissal/internal/models"
	"github.com/alhuda/dismissal/internal/store"
)

var (
	ErrDuplicateForToday = errors.New("a queue for today already exists")
	ErrNoOpenQueue       = errors.New("no open queue")
)

// StartDailyQueue creates today's queue and populates it with every student
// who is enrolled active and marked present today. Creation and population
// run in one transaction so a crash leaves either no queue or a fully
// populated one. A stale same-day queue must be deleted explicitly first;
// silently repopulating it would be how double releases start.
func StartDailyQueue(actor string) (*models.Queue, error) {
	id := TodayID()
	now := time.Now()

	var q *models.Queue
	err := db.Conn().Transaction(func(tx *gorm.DB) error {
		var err error
		q, err = store.CreateQueue(tx, id, actor, now)
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrDuplicateForToday
		}
		if err != nil {
			return err
		}

		students, err := directory.ActivePresentStudents(tx, id)
		if err != nil {
			return fmt.Errorf("select eligible students: %w", err)
		}
		recs := make([]models.DismissalRecord, 0, len(students))
		for _, s := range students {
			recs = append(recs, models.DismissalRecord{
				StudentID:       s.ID,
				Grade:           s.Grade,
				ClassBuilding:   s.ClassBuilding,
				Status:          dismissal.StatusStandby,
				StatusChangedAt: now,
				StatusChangedBy: actor,
			})
		}
		if err := store.UpsertDismissalRecords(tx, id, recs); err != nil {
			return fmt.Errorf("populate queue: %w", err)
		}

		slog.Info("queue started", "component", "lifecycle",
			"queue", id, "actor", actor, "students", len(recs))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// CloseOpenQueue closes whichever queue is open. The standby-to-unknown
// cascade shares the close's transaction inside store.CloseQueue, and every
// record it sweeps to unknown is announced through the transition hook.
func CloseOpenQueue(actor string) (*models.Queue, error) {
	open, err := store.GetOpenQueue(db.Conn())
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenQueue
	}
	now := time.Now()
	var q *models.Queue
	var swept []models.DismissalRecord
	err = db.Conn().Transaction(func(tx *gorm.DB) error {
		var err error
		swept, err = store.ListRecords(tx, open.ID, store.RecordFilter{Status: dismissal.StatusStandby})
		if err != nil {
			return err
		}
		q, err = store.CloseQueue(tx, open.ID, actor, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	for i := range swept {
		swept[i].Status = dismissal.StatusUnknown
		swept[i].StatusChangedAt = now
		swept[i].StatusChangedBy = actor
		events.Emit(swept[i])
	}
	slog.Info("queue closed", "component", "lifecycle", "queue", q.ID, "actor", actor)
	return q, nil
}

// DeleteQueue hard-deletes a queue and its records.
func DeleteQueue(id, actor string) error {
	if err := store.DeleteQueue(db.Conn(), id); err != nil {
		return err
	}
	slog.Info("queue deleted", "component", "lifecycle", "queue", id, "actor", actor)
	return nil
}
