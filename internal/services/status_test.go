package services

import (
	"errors"
	"testing"

	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/store"
)

// TestUpdateStudentStatus_AutomaticRespectsEdges drives one student along
// the happy path and confirms a skipped edge is refused.
func TestUpdateStudentStatus_AutomaticRespectsEdges(t *testing.T) {
	gdb := setupDB(t)
	_, students := seedFamily(t, gdb, "+628110000020", "4A", 1)
	if _, err := StartDailyQueue("frontdesk"); err != nil {
		t.Fatalf("start: %v", err)
	}
	id := students[0].ID

	// standby -> released skips the admit edge
	if _, err := UpdateStudentStatus(id, dismissal.StatusReleased, dismissal.MethodQRScan, "gate"); !errors.Is(err, dismissal.ErrInvalidTransition) {
		t.Fatalf("skip edge: want ErrInvalidTransition, got %v", err)
	}

	for _, target := range []dismissal.Status{
		dismissal.StatusInQueue,
		dismissal.StatusReleased,
		dismissal.StatusCollected,
	} {
		rec, err := UpdateStudentStatus(id, target, dismissal.MethodQRScan, "gate")
		if err != nil {
			t.Fatalf("to %s: %v", target, err)
		}
		if rec.Status != target {
			t.Fatalf("to %s: got %s", target, rec.Status)
		}
	}

	// no automatic action reaches after_care
	if _, err := UpdateStudentStatus(id, dismissal.StatusAfterCare, dismissal.MethodQRScan, "gate"); !errors.Is(err, dismissal.ErrInvalidTransition) {
		t.Fatalf("after_care automatic: want ErrInvalidTransition, got %v", err)
	}
}

// TestUpdateStudentStatus_ManualIsUnrestricted corrects a collected student
// back to standby, an edge no automatic action offers.
func TestUpdateStudentStatus_ManualIsUnrestricted(t *testing.T) {
	gdb := setupDB(t)
	_, students := seedFamily(t, gdb, "+628110000021", "4A", 1)
	if _, err := StartDailyQueue("frontdesk"); err != nil {
		t.Fatalf("start: %v", err)
	}
	id := students[0].ID

	rec, err := UpdateStudentStatus(id, dismissal.StatusNoShow, dismissal.MethodManual, "office")
	if err != nil {
		t.Fatalf("manual no_show: %v", err)
	}
	if rec.Status != dismissal.StatusNoShow || rec.StatusChangedBy != "office" {
		t.Fatalf("record: %+v", rec)
	}

	if _, err := UpdateStudentStatus(id, dismissal.StatusStandby, dismissal.MethodManual, "office"); err != nil {
		t.Fatalf("manual back to standby: %v", err)
	}
}

func TestUpdateStudentStatus_RecordNotFound(t *testing.T) {
	gdb := setupDB(t)
	seedFamily(t, gdb, "+628110000022", "4A", 1)
	if _, err := StartDailyQueue("frontdesk"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := UpdateStudentStatus(424242, dismissal.StatusInQueue, dismissal.MethodManual, "office"); !errors.Is(err, store.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

// TestBulkGradeStatus moves a whole grade to after_care and leaves the other
// grade alone; the write must be stamped as a bulk-grade method.
func TestBulkGradeStatus(t *testing.T) {
	gdb := setupDB(t)
	_, third := seedFamily(t, gdb, "+628110000023", "3A", 2)
	seedFamily(t, gdb, "+628110000024", "4B", 1)
	q, err := StartDailyQueue("frontdesk")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	n, err := BulkGradeStatus("3A", dismissal.StatusAfterCare, "office")
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows: want 2, got %d", n)
	}

	rec, err := store.GetRecord(gdb, q.ID, third[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != dismissal.StatusAfterCare || rec.AdmissionMethod != dismissal.MethodBulkGrade {
		t.Fatalf("record: %+v", rec)
	}

	others, err := store.ListRecords(gdb, q.ID, store.RecordFilter{Grade: "4B"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(others) != 1 || others[0].Status != dismissal.StatusStandby {
		t.Fatalf("4B disturbed: %+v", others)
	}
}

func TestBulkGradeStatus_UnknownTarget(t *testing.T) {
	setupDB(t)
	if _, err := BulkGradeStatus("3A", "vanished", "office"); !errors.Is(err, dismissal.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}
