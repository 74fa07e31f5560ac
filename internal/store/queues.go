// Package store is the access contract over queues and dismissal records.
// Every function takes the *gorm.DB it should run against, so callers can
// pass either the shared connection or an enclosing transaction; multi-row
// writes open their own transaction (a savepoint when already inside one)
// so they commit or roll back as a unit.
package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/models"
)

// GetOpenQueue returns the single open queue, or nil when dismissal is not
// running. The YYYYMMDD primary key plus the open-status check below keep
// "single" true without any cached global.
func GetOpenQueue(gdb *gorm.DB) (*models.Queue, error) {
	var q models.Queue
	err := gdb.Where("status = ?", models.QueueOpen).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQueue inserts a new open queue. Fails with ErrConflictOpenQueue when
// any queue is still open (that one must close or go first), then with
// ErrAlreadyExists when the id was ever used, even by a since-closed queue.
func CreateQueue(gdb *gorm.DB, id, startedBy string, now time.Time) (*models.Queue, error) {
	var q models.Queue
	err := gdb.Transaction(func(tx *gorm.DB) error {
		// open-queue conflict outranks a recycled id: when today's queue
		// exists and is still open, the caller should hear "close it first".
		var n int64
		if err := tx.Model(&models.Queue{}).Where("status = ?", models.QueueOpen).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrConflictOpenQueue
		}
		if err := tx.Model(&models.Queue{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyExists
		}
		q = models.Queue{
			ID:            id,
			Status:        models.QueueOpen,
			StartedAt:     now,
			StartedBy:     startedBy,
			LastUpdatedAt: now,
		}
		return tx.Create(&q).Error
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// CloseQueue marks a queue closed and, in the same transaction, moves every
// record still in standby to unknown. A crash can only leave the queue fully
// open or fully closed; never a closed queue with stale standby rows.
func CloseQueue(gdb *gorm.DB, id, closedBy string, now time.Time) (*models.Queue, error) {
	var q models.Queue
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&q, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if q.Status != models.QueueOpen {
			return ErrNotOpen
		}

		res := tx.Model(&models.DismissalRecord{}).
			Where("queue_id = ? AND status = ?", id, dismissal.StatusStandby).
			Updates(map[string]any{
				"status":            dismissal.StatusUnknown,
				"status_changed_at": now,
				"status_changed_by": closedBy,
			})
		if res.Error != nil {
			return res.Error
		}

		q.Status = models.QueueClosed
		q.ClosedAt = &now
		q.ClosedBy = closedBy
		q.LastUpdatedAt = now
		return tx.Save(&q).Error
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteQueue removes a queue and all its records as one unit. Deleting the
// open queue is allowed; the current-queue lookup simply starts answering
// nothing.
func DeleteQueue(gdb *gorm.DB, id string) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("queue_id = ?", id).Delete(&models.DismissalRecord{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Queue{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListQueues returns all queues, most recent school day first. The id's
// YYYYMMDD form makes lexical order chronological.
func ListQueues(gdb *gorm.DB) ([]models.Queue, error) {
	var qs []models.Queue
	if err := gdb.Order("id desc").Find(&qs).Error; err != nil {
		return nil, err
	}
	return qs, nil
}
