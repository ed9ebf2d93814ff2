package shift

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"shiftclock_backend/models"
)

// ShiftTarget is the full-shift duration progress is scored against. It does
// not depend on the roster window.
const ShiftTarget = 10 * time.Hour

// Anchor places a time-of-day on the given calendar date in loc.
func Anchor(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(models.DateLayout+" "+models.ClockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("anchor %s %s: %w", date, clock, err)
	}
	return t, nil
}

// FormatElapsed renders d as HH:MM:SS. Hours are not wrapped at 24.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// Progress returns elapsed as a percentage of target, clamped to [0, 100].
func Progress(elapsed, target time.Duration) float64 {
	if target <= 0 || elapsed <= 0 {
		return 0
	}
	return math.Min(elapsed.Seconds()/target.Seconds()*100, 100)
}

// CompletedProgress scores a closed shift from its stored total hours.
func CompletedProgress(totalHours float64, target time.Duration) float64 {
	return Progress(time.Duration(totalHours*float64(time.Hour)), target)
}

// FormatHours renders stored total hours the way a closed shift is displayed.
func FormatHours(totalHours float64) string {
	return strconv.FormatFloat(totalHours, 'f', 2, 64) + "h"
}

// TotalHours computes the rounded duration between check-in and check-out on
// date. A non-positive duration is rejected.
func TotalHours(date, checkIn, checkOut string, loc *time.Location) (float64, error) {
	in, err := Anchor(date, checkIn, loc)
	if err != nil {
		return 0, err
	}
	out, err := Anchor(date, checkOut, loc)
	if err != nil {
		return 0, err
	}
	d := out.Sub(in)
	if d <= 0 {
		return 0, &InvalidStateError{Op: "end", State: Active, Reason: fmt.Sprintf("check-out %s is not after check-in %s", checkOut, checkIn)}
	}
	return math.Round(d.Hours()*100) / 100, nil
}
