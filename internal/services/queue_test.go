package services

import (
	"errors"
	"testing"
	"time"

	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/models"
	"github.com/alhuda/dismissal/internal/store"
)

// TestStartDailyQueue_PopulatesEligible seeds three active+present students,
// one inactive student, and one active-but-absent student; exactly the three
// eligible ones must get standby records.
func TestStartDailyQueue_PopulatesEligible(t *testing.T) {
	gdb := setupDB(t)
	_, _ = seedFamily(t, gdb, "+628110000001", "3A", 3)

	parent2 := models.Parent{Name: "Other Parent", Phone: "+628110000002"}
	gdb.Create(&parent2)
	inactive := models.Student{Name: "Left School", Grade: "3A", EnrollmentStatus: models.EnrollmentInactive, ParentID: parent2.ID}
	gdb.Create(&inactive)
	gdb.Create(&models.AttendanceMark{StudentID: inactive.ID, Day: TodayID(), Present: true})
	absent := models.Student{Name: "Home Sick", Grade: "3A", EnrollmentStatus: models.EnrollmentActive, ParentID: parent2.ID}
	gdb.Create(&absent)
	gdb.Create(&models.AttendanceMark{StudentID: absent.ID, Day: TodayID(), Present: false})

	q, err := StartDailyQueue("frontdesk")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if q.ID != TodayID() || q.Status != models.QueueOpen {
		t.Fatalf("queue: %+v", q)
	}

	recs, err := store.ListRecords(gdb, q.ID, store.RecordFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("records: want 3, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.Status != dismissal.StatusStandby {
			t.Errorf("student %d: want standby, got %s", rec.StudentID, rec.Status)
		}
	}
}

func TestStartDailyQueue_DuplicateForToday(t *testing.T) {
	gdb := setupDB(t)

	if _, err := StartDailyQueue("a"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := CloseOpenQueue("a"); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Today's id exists (closed). A restart must refuse and leave it alone.
	if _, err := StartDailyQueue("b"); !errors.Is(err, ErrDuplicateForToday) {
		t.Fatalf("want ErrDuplicateForToday, got %v", err)
	}
	qs, err := store.ListQueues(gdb)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(qs) != 1 || qs[0].Status != models.QueueClosed {
		t.Fatalf("existing queue disturbed: %+v", qs)
	}
}

func TestStartDailyQueue_ConflictOpenQueue(t *testing.T) {
	gdb := setupDB(t)

	// A forgotten queue from yesterday is still open.
	if _, err := store.CreateQueue(gdb, "19990101", "a", time.Now()); err != nil {
		t.Fatalf("seed stale queue: %v", err)
	}
	if _, err := StartDailyQueue("b"); !errors.Is(err, store.ErrConflictOpenQueue) {
		t.Fatalf("want ErrConflictOpenQueue, got %v", err)
	}
}

func TestCloseOpenQueue_NoOpenQueue(t *testing.T) {
	setupDB(t)
	if _, err := CloseOpenQueue("a"); !errors.Is(err, ErrNoOpenQueue) {
		t.Fatalf("want ErrNoOpenQueue, got %v", err)
	}
}

func TestDeleteQueue_OpenQueueAllowed(t *testing.T) {
	gdb := setupDB(t)
	seedFamily(t, gdb, "+628110000003", "1A", 1)

	q, err := StartDailyQueue("a")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := DeleteQueue(q.ID, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	open, err := store.GetOpenQueue(gdb)
	if err != nil || open != nil {
		t.Fatalf("expected no open queue, got (%+v, %v)", open, err)
	}
}
