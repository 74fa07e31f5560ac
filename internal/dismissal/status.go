package dismissal

// Status is the pickup state of one student within a daily queue.
type Status string

const (
	StatusStandby        Status = "standby"
	StatusInQueue        Status = "in_queue"
	StatusReleased       Status = "released"
	StatusCollected      Status = "collected"
	StatusUnknown        Status = "unknown"
	StatusNoShow         Status = "no_show"
	StatusEarlyDismissal Status = "early_dismissal"
	StatusDirectPickup   Status = "direct_pickup"
	StatusLatePickup     Status = "late_pickup"
	StatusAfterCare      Status = "after_care"
)

// AllStatuses in display order (progression first, then exceptions).
var AllStatuses = []Status{
	StatusStandby,
	StatusInQueue,
	StatusReleased,
	StatusCollected,
	StatusUnknown,
	StatusNoShow,
	StatusEarlyDismissal,
	StatusDirectPickup,
	StatusLatePickup,
	StatusAfterCare,
}

func ValidStatus(s Status) bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Method records how a transition was triggered.
type Method string

const (
	MethodQRScan    Method = "qr_scan"
	MethodManual    Method = "manual"
	MethodBulkGrade Method = "bulk_grade"
)

// ContactKind distinguishes a parent picking up from an alternate
// person authorized by the parent.
type ContactKind string

const (
	ContactParent    ContactKind = "parent"
	ContactAlternate ContactKind = "alternate"
)
