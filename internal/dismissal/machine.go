package dismissal

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when an automatic action is applied to a
// record whose current status is not a legal source for that action.
var ErrInvalidTransition = errors.New("invalid status transition")

// ActionName identifies a transition trigger.
type ActionName string

const (
	ActionAdmit          ActionName = "admit"
	ActionRelease        ActionName = "release"
	ActionCollect        ActionName = "collect"
	ActionQueueClosed    ActionName = "queue_closed"
	ActionManualOverride ActionName = "manual_override"
)

// Action is a transition request. Target is only meaningful for
// ActionManualOverride, which carries its destination explicitly.
type Action struct {
	Name   ActionName
	Target Status
}

func Admit() Action       { return Action{Name: ActionAdmit} }
func Release() Action     { return Action{Name: ActionRelease} }
func Collect() Action     { return Action{Name: ActionCollect} }
func QueueClosed() Action { return Action{Name: ActionQueueClosed} }

// ManualOverride is the staff-correction path: any current status may move to
// any target. It bypasses the edge table on purpose, so the automatic path's
// guarantees stay intact no matter what corrections staff record.
func ManualOverride(target Status) Action {
	return Action{Name: ActionManualOverride, Target: target}
}

// autoEdges maps each automatic action to its allowed source statuses and its
// fixed destination. Automatic actions never move a record anywhere else.
var autoEdges = map[ActionName]struct {
	From []Status
	To   Status
}{
	ActionAdmit:       {From: []Status{StatusStandby}, To: StatusInQueue},
	ActionRelease:     {From: []Status{StatusInQueue}, To: StatusReleased},
	ActionCollect:     {From: []Status{StatusReleased}, To: StatusCollected},
	ActionQueueClosed: {From: []Status{StatusStandby}, To: StatusUnknown},
}

// Apply validates a transition and returns the resulting status. It is pure:
// it never touches storage, so both the per-record write path and the bulk
// paths share one source of truth for legality.
func Apply(current Status, a Action) (Status, error) {
	if a.Name == ActionManualOverride {
		if !ValidStatus(a.Target) {
			return "", fmt.Errorf("%w: unknown target status %q", ErrInvalidTransition, a.Target)
		}
		return a.Target, nil
	}
	edge, ok := autoEdges[a.Name]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, a.Name)
	}
	for _, from := range edge.From {
		if from == current {
			return edge.To, nil
		}
	}
	return "", fmt.Errorf("%w: %s does not apply to %s", ErrInvalidTransition, a.Name, current)
}
