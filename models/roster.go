package models

import "time"

// StandardShiftNotes labels the synthesized roster entry used when no
// roster row applies.
const StandardShiftNotes = "Standard Shift"

// RosterEntry is the planned shift window for a day. A nil EmployeeID marks a
// broadcast entry that applies to everyone.
type RosterEntry struct {
	ID          int       `json:"id"`
	EmployeeID  *int      `json:"employee_id"`
	Date        string    `json:"date"`
	ShiftStart  time.Time `json:"shift_start"`
	ShiftEnd    time.Time `json:"shift_end"`
	TaskNotes   string    `json:"task_notes"`
	Synthesized bool      `json:"synthesized,omitempty"`
}

type CreateRosterRequest struct {
	EmployeeID *int   `json:"employee_id"`
	Date       string `json:"date" binding:"required"`
	ShiftStart string `json:"shift_start" binding:"required"`
	ShiftEnd   string `json:"shift_end" binding:"required"`
	TaskNotes  string `json:"task_notes"`
}

type RosterListResponse struct {
	Status string        `json:"status"`
	Data   []RosterEntry `json:"data"`
}

type RosterResponse struct {
	Status string      `json:"status"`
	Data   RosterEntry `json:"data"`
}
