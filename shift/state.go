package shift

import "shiftclock_backend/models"

// State is the position of today's record in the shift lifecycle.
type State int

const (
	NotStarted State = iota
	Active
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case Active:
		return "ACTIVE"
	case Completed:
		return "COMPLETED"
	}
	return "UNKNOWN"
}

// StateOf derives the lifecycle state from a record, which may be nil.
func StateOf(r *models.AttendanceRecord) State {
	switch {
	case r == nil || r.CheckInTime == nil:
		return NotStarted
	case r.CheckOutTime == nil:
		return Active
	default:
		return Completed
	}
}
