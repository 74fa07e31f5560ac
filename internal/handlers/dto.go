package handlers

import (
	"time"

	"github.com/alhuda/dismissal/internal/models"
)

type queueJSON struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"startedAt"`
	StartedBy     string     `json:"startedBy"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
	ClosedBy      string     `json:"closedBy,omitempty"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}

func toQueueJSON(q *models.Queue) queueJSON {
	return queueJSON{
		ID:            q.ID,
		Status:        q.Status,
		StartedAt:     q.StartedAt,
		StartedBy:     q.StartedBy,
		ClosedAt:      q.ClosedAt,
		ClosedBy:      q.ClosedBy,
		LastUpdatedAt: q.LastUpdatedAt,
	}
}

type recordJSON struct {
	QueueID         string    `json:"queueId"`
	StudentID       uint      `json:"studentId"`
	Grade           string    `json:"grade"`
	ClassBuilding   string    `json:"classBuilding"`
	Status          string    `json:"status"`
	AdmissionMethod string    `json:"admissionMethod,omitempty"`
	ContactID       *uint     `json:"contactId,omitempty"`
	ContactName     string    `json:"contactDisplayName,omitempty"`
	ContactKind     string    `json:"contactKind,omitempty"`
	StatusChangedAt time.Time `json:"statusChangedAt"`
	StatusChangedBy string    `json:"statusChangedBy"`
}

func toRecordJSON(rec *models.DismissalRecord) recordJSON {
	return recordJSON{
		QueueID:         rec.QueueID,
		StudentID:       rec.StudentID,
		Grade:           rec.Grade,
		ClassBuilding:   rec.ClassBuilding,
		Status:          string(rec.Status),
		AdmissionMethod: string(rec.AdmissionMethod),
		ContactID:       rec.ContactID,
		ContactName:     rec.ContactDisplayName,
		ContactKind:     string(rec.ContactKind),
		StatusChangedAt: rec.StatusChangedAt,
		StatusChangedBy: rec.StatusChangedBy,
	}
}
