package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/models"
)

// Meta is the audit trail carried by every status write.
type Meta struct {
	ChangedAt time.Time
	ChangedBy string
	Method    dismissal.Method

	ContactID   *uint
	ContactName string
	ContactKind dismissal.ContactKind
}

// RecordFilter narrows record reads and bulk writes.
type RecordFilter struct {
	Grade  string
	Status dismissal.Status
}

// UpsertDismissalRecords bulk-creates records keyed on (queue, student) in
// one transaction. Re-running population against the same queue is a no-op
// for rows that already exist, which is what makes auto-populate idempotent.
func UpsertDismissalRecords(gdb *gorm.DB, queueID string, recs []models.DismissalRecord) error {
	if len(recs) == 0 {
		return nil
	}
	return gdb.Transaction(func(tx *gorm.DB) error {
		for i := range recs {
			recs[i].QueueID = queueID
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "queue_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).Create(&recs).Error
	})
}

// GetRecord loads one (queue, student) record.
func GetRecord(gdb *gorm.DB, queueID string, studentID uint) (*models.DismissalRecord, error) {
	var rec models.DismissalRecord
	err := gdb.Where("queue_id = ? AND student_id = ?", queueID, studentID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveStatus writes an already-validated transition. Callers run the state
// machine first; this only stamps and persists, and bumps the queue's
// last-updated time in the same write.
func SaveStatus(gdb *gorm.DB, rec *models.DismissalRecord, newStatus dismissal.Status, meta Meta) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		rec.Status = newStatus
		applyMeta(rec, meta)
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		return touchQueue(tx, rec.QueueID, meta.ChangedAt)
	})
}

// BulkUpdateStatus rewrites every matching record in one transaction and
// reports how many rows moved. Used by grade-level overrides; the close
// cascade has its own copy inside CloseQueue so it shares the queue write's
// transaction.
func BulkUpdateStatus(gdb *gorm.DB, queueID string, filter RecordFilter, newStatus dismissal.Status, meta Meta) (int64, error) {
	var n int64
	err := gdb.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.DismissalRecord{}).Where("queue_id = ?", queueID)
		if filter.Grade != "" {
			q = q.Where("grade = ?", filter.Grade)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		res := q.Updates(map[string]any{
			"status":            newStatus,
			"admission_method":  meta.Method,
			"status_changed_at": meta.ChangedAt,
			"status_changed_by": meta.ChangedBy,
		})
		if res.Error != nil {
			return res.Error
		}
		n = res.RowsAffected
		return touchQueue(tx, queueID, meta.ChangedAt)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ListRecords returns a queue's records, optionally narrowed by grade and
// status, in stable grade-then-student order.
func ListRecords(gdb *gorm.DB, queueID string, filter RecordFilter) ([]models.DismissalRecord, error) {
	q := gdb.Where("queue_id = ?", queueID)
	if filter.Grade != "" {
		q = q.Where("grade = ?", filter.Grade)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var recs []models.DismissalRecord
	if err := q.Order("grade asc, student_id asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func applyMeta(rec *models.DismissalRecord, meta Meta) {
	rec.AdmissionMethod = meta.Method
	rec.StatusChangedAt = meta.ChangedAt
	rec.StatusChangedBy = meta.ChangedBy
	if meta.ContactID != nil {
		rec.ContactID = meta.ContactID
	}
	if meta.ContactName != "" {
		rec.ContactDisplayName = meta.ContactName
	}
	if meta.ContactKind != "" {
		rec.ContactKind = meta.ContactKind
	}
}

func touchQueue(tx *gorm.DB, queueID string, at time.Time) error {
	return tx.Model(&models.Queue{}).Where("id = ?", queueID).
		Update("last_updated_at", at).Error
}
