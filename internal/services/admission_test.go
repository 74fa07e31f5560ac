package services

import (
	"errors"
	"testing"

	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/store"
)

// TestAdmitByCredential_AlternateAdmitsAllSiblings runs the full pipeline
// with an alternate-format credential for a parent with two students: both
// records must reach in_queue carrying the alternate's identity.
func TestAdmitByCredential_AlternateAdmitsAllSiblings(t *testing.T) {
	gdb := setupDB(t)
	parent, students := seedFamily(t, gdb, "+628110000010", "2B", 2)
	if _, err := StartDailyQueue("frontdesk"); err != nil {
		t.Fatalf("start: %v", err)
	}

	raw := AlternateCredentialText(&parent, "Aunt Khadijah", "+628117777777", TodayID())
	res, err := AdmitByCredential(raw, "gate")
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if res.AdmittedCount != 2 || len(res.FailedStudentIDs) != 0 {
		t.Fatalf("tally: %+v", res)
	}

	for _, s := range students {
		rec, err := store.GetRecord(gdb, res.QueueID, s.ID)
		if err != nil {
			t.Fatalf("get record: %v", err)
		}
		if rec.Status != dismissal.StatusInQueue {
			t.Errorf("student %d: want in_queue, got %s", s.ID, rec.Status)
		}
		if rec.ContactKind != dismissal.ContactAlternate {
			t.Errorf("student %d: want alternate contact, got %s", s.ID, rec.ContactKind)
		}
		if rec.ContactDisplayName != "Aunt Khadijah" {
			t.Errorf("student %d: contact name %q", s.ID, rec.ContactDisplayName)
		}
		if rec.ContactID == nil || *rec.ContactID != parent.ID {
			t.Errorf("student %d: contact id %v", s.ID, rec.ContactID)
		}
		if rec.AdmissionMethod != dismissal.MethodQRScan {
			t.Errorf("student %d: method %s", s.ID, rec.AdmissionMethod)
		}
	}
}

// TestAdmitByCredential_DuplicateScanIsIdempotent scans the same credential
// twice. The second call succeeds, the status stays in_queue, and the
// contact fields refresh to the later scan's identity.
func TestAdmitByCredential_DuplicateScanIsIdempotent(t *testing.T) {
	gdb := setupDB(t)
	parent, students := seedFamily(t, gdb, "+628110000011", "2B", 1)
	if _, err := StartDailyQueue("frontdesk"); err != nil {
		t.Fatalf("start: %v", err)
	}

	first := CredentialText(&parent, TodayID())
	res, err := AdmitByCredential(first, "gate")
	if err != nil || res.AdmittedCount != 1 {
		t.Fatalf("first admit: (%+v, %v)", res, err)
	}

	second := AlternateCredentialText(&parent, "Uncle Yusuf", "+628119999999", TodayID())
	res, err = AdmitByCredential(second, "gate")
	if err != nil {
		t.Fatalf("second admit: %v", err)
	}
	if res.AdmittedCount != 1 || len(res.FailedStudentIDs) != 0 {
		t.Fatalf("duplicate scan surfaced as failure: %+v", res)
	}

	rec, err := store.GetRecord(gdb, res.QueueID, students[0].ID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.Status != dismissal.StatusInQueue {
		t.Fatalf("status after duplicate scan: %s", rec.Status)
	}
	if rec.ContactDisplayName != "Uncle Yusuf" || rec.ContactKind != dismissal.ContactAlternate {
		t.Fatalf("later scan did not refresh contact: %q/%s", rec.ContactDisplayName, rec.ContactKind)
	}
}

// TestAdmitByCredential_PartialFailure puts one of two siblings past the
// admit edge; the other sibling must still be admitted and the stuck one
// must be listed, not fatal.
func TestAdmitByCredential_PartialFailure(t *testing.T) {
	gdb := setupDB(t)
	parent, students := seedFamily(t, gdb, "+628110000012", "5C", 2)
	q, err := StartDailyQueue("frontdesk")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// First sibling already walked out via a manual correction.
	if _, err := UpdateStudentStatus(students[0].ID, dismissal.StatusEarlyDismissal, dismissal.MethodManual, "office"); err != nil {
		t.Fatalf("manual override: %v", err)
	}

	res, err := AdmitByCredential(CredentialText(&parent, TodayID()), "gate")
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if res.AdmittedCount != 1 {
		t.Fatalf("admitted: want 1, got %d", res.AdmittedCount)
	}
	if len(res.FailedStudentIDs) != 1 || res.FailedStudentIDs[0] != students[0].ID {
		t.Fatalf("failed list: %v", res.FailedStudentIDs)
	}

	rec, _ := store.GetRecord(gdb, q.ID, students[0].ID)
	if rec.Status != dismissal.StatusEarlyDismissal {
		t.Fatalf("stuck sibling moved: %s", rec.Status)
	}
}

func TestAdmitByCredential_ValidationStops(t *testing.T) {
	gdb := setupDB(t)
	seedFamily(t, gdb, "+628110000013", "1A", 1)
	if _, err := StartDailyQueue("frontdesk"); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := AdmitByCredential("complete garbage", "gate"); !errors.Is(err, ErrUnrecognizedFormat) {
		t.Fatalf("garbage: want ErrUnrecognizedFormat, got %v", err)
	}
	if _, err := AdmitByCredential("Name: X\nPhone: 0811", "gate"); !errors.Is(err, ErrMissingParentID) {
		t.Fatalf("no parent id: want ErrMissingParentID, got %v", err)
	}
	if _, err := AdmitByCredential("Name: X\nPhone: 0811\nParent ID: 99999", "gate"); !errors.Is(err, ErrNoStudentsForParent) {
		t.Fatalf("unknown parent: want ErrNoStudentsForParent, got %v", err)
	}
}

func TestAdmitByCredential_NoOpenQueue(t *testing.T) {
	gdb := setupDB(t)
	parent, _ := seedFamily(t, gdb, "+628110000014", "1A", 1)

	_, err := AdmitByCredential(CredentialText(&parent, TodayID()), "gate")
	if !errors.Is(err, ErrNoOpenQueue) {
		t.Fatalf("want ErrNoOpenQueue, got %v", err)
	}
}
