package events

import "github.com/alhuda/dismissal/internal/models"

// OnTransition is called after a dismissal record's status changes. Every
// path goes through it: single-student updates, grade-wide bulk moves (one
// call per record), and the standby sweep when a queue closes. Dashboards
// subscribe here instead of polling when they want per-student updates.
var OnTransition func(rec models.DismissalRecord)

// Emit invokes the hook when one is registered.
func Emit(rec models.DismissalRecord) {
	if OnTransition != nil {
		OnTransition(rec)
	}
}
