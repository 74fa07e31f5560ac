package services

import (
	"errors"
	"log/slog"
	"strconv"
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
	ErrMissingParentID     = errors.New("credential carries no parent id")
	ErrNoStudentsForParent = errors.New("no students registered for parent")
)

// AdmitResult is the per-student tally an admission returns. One sibling's
// record being in an odd state must not block the others, so failures are
// listed, not fatal.
type AdmitResult struct {
	QueueID          string `json:"queueId"`
	AdmittedCount    int    `json:"admittedCount"`
	FailedStudentIDs []uint `json:"failedStudentIds"`
}

// AdmitByCredential runs the full admission pipeline on decoded QR text:
// parse, resolve the parent's students, then admit each one into the open
// queue. Resolution requires the credential's parent id; admitting on a
// name/phone fuzzy match is deliberately not supported.
func AdmitByCredential(raw, actor string) (*AdmitResult, error) {
	cred, err := ParseCredential(raw)
	if err != nil {
		return nil, err
	}
	if cred.ParentID == "" {
		return nil, ErrMissingParentID
	}
	parentID64, err := strconv.ParseUint(cred.ParentID, 10, 32)
	if err != nil {
		return nil, ErrUnrecognizedFormat
	}
	parentID := uint(parentID64)

	students, err := directory.StudentsByParent(db.Conn(), parentID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, ErrNoStudentsForParent
	}

	open, err := store.GetOpenQueue(db.Conn())
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenQueue
	}

	result := &AdmitResult{QueueID: open.ID, FailedStudentIDs: []uint{}}
	for _, s := range students {
		if err := admitStudent(open.ID, s.ID, parentID, cred, actor); err != nil {
			slog.Warn("admission failed for student", "component", "admission",
				"queue", open.ID, "student", s.ID, "err", err)
			result.FailedStudentIDs = append(result.FailedStudentIDs, s.ID)
			continue
		}
		result.AdmittedCount++
	}

	slog.Info("credential admitted", "component", "admission",
		"queue", open.ID, "parent", parentID, "kind", cred.Kind,
		"admitted", result.AdmittedCount, "failed", len(result.FailedStudentIDs))
	return result, nil
}

// admitStudent moves one record Standby -> InQueue in its own transaction.
// A record already InQueue is a duplicate scan: success, with the contact
// fields and timestamp refreshed (a sibling's alternate arriving later is
// real information worth keeping).
func admitStudent(queueID string, studentID, parentID uint, cred *Credential, actor string) error {
	var admitted models.DismissalRecord
	err := db.Conn().Transaction(func(tx *gorm.DB) error {
		rec, err := store.GetRecord(tx, queueID, studentID)
		if err != nil {
			return err
		}
		next := rec.Status
		if rec.Status != dismissal.StatusInQueue {
			next, err = dismissal.Apply(rec.Status, dismissal.Admit())
			if err != nil {
				return err
			}
		}
		if err := store.SaveStatus(tx, rec, next, store.Meta{
			ChangedAt:   time.Now(),
			ChangedBy:   actor,
			Method:      dismissal.MethodQRScan,
			ContactID:   &parentID,
			ContactName: cred.DisplayName(),
			ContactKind: cred.Kind,
		}); err != nil {
			return err
		}
		admitted = *rec
		return nil
	})
	if err != nil {
		return err
	}
	events.Emit(admitted)
	return nil
}
