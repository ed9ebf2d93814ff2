package shift

import (
	"time"

	"shiftclock_backend/models"
)

// Default shift window used when no roster entry applies.
const (
	DefaultShiftStart = "08:00:00"
	DefaultShiftEnd   = "18:00:00"
)

// ResolveRoster picks the roster entry that applies to employeeID on date.
// An entry addressed to the employee wins over a broadcast entry; with
// neither present a standard 08:00-18:00 window is synthesized. The
// synthesized entry is never persisted.
func ResolveRoster(employeeID int, date string, entries []models.RosterEntry, loc *time.Location) models.RosterEntry {
	var broadcast *models.RosterEntry
	for i := range entries {
		e := entries[i]
		if e.Date != "" && e.Date != date {
			continue
		}
		if e.EmployeeID != nil && *e.EmployeeID == employeeID {
			return e
		}
		if e.EmployeeID == nil && broadcast == nil {
			broadcast = &entries[i]
		}
	}
	if broadcast != nil {
		return *broadcast
	}
	return DefaultRoster(employeeID, date, loc)
}

// DefaultRoster synthesizes the standard shift for date.
func DefaultRoster(employeeID int, date string, loc *time.Location) models.RosterEntry {
	start, err := Anchor(date, DefaultShiftStart, loc)
	if err != nil {
		start = time.Time{}
	}
	end, err := Anchor(date, DefaultShiftEnd, loc)
	if err != nil {
		end = time.Time{}
	}
	id := employeeID
	return models.RosterEntry{
		EmployeeID:  &id,
		Date:        date,
		ShiftStart:  start,
		ShiftEnd:    end,
		TaskNotes:   models.StandardShiftNotes,
		Synthesized: true,
	}
}
