package shift

import (
	"errors"
	"fmt"
	"time"
)

// ErrClosed is returned by a controller that has been torn down.
var ErrClosed = errors.New("shift: controller closed")

// InvalidStateError reports an operation attempted from a state that forbids it.
type InvalidStateError struct {
	Op     string
	State  State
	Reason string
}

func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("shift: cannot %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("shift: cannot %s while %s", e.Op, e.State)
}

// ConflictError reports that the store already holds a record that makes the
// requested transition redundant.
type ConflictError struct {
	Op     string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("shift: %s conflict: %s", e.Op, e.Reason)
}

// TransientIOError wraps a failure to reach the store. The controller's state
// is unchanged when one is returned; the caller may retry.
type TransientIOError struct {
	Op  string
	Err error
}

func (e *TransientIOError) Error() string {
	return fmt.Sprintf("shift: %s: store unavailable: %v", e.Op, e.Err)
}

func (e *TransientIOError) Unwrap() error { return e.Err }

// ClockAnomalyError describes a tick whose elapsed time came out negative.
// It is logged and the tick is skipped.
type ClockAnomalyError struct {
	Start time.Time
	Now   time.Time
}

func (e *ClockAnomalyError) Error() string {
	return fmt.Sprintf("shift: clock anomaly: now %s is before start %s",
		e.Now.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// IsInvalidState reports whether err is, or wraps, an InvalidStateError.
func IsInvalidState(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}

// IsConflict reports whether err is, or wraps, a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsTransient reports whether err is, or wraps, a TransientIOError.
func IsTransient(err error) bool {
	var target *TransientIOError
	return errors.As(err, &target)
}
